// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package complexes

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/estato/geomatch/internal/normalize"
)

// Pattern compilation works in folded-text space: development names and
// listing text both go through normalize.FoldText before patterns apply, so
// the patterns are written with already-folded letters ("житловии", not
// "житловий") and see only letters, digits and single spaces. Parenthetical
// extraction is the exception; it runs on the raw name because folding
// discards the parentheses themselves.
const (
	bareNameMinLen     = 4
	significantWordLen = 3
)

var (
	// Keywords here are folded forms. "очеред" is "очередь" with the soft
	// sign removed, "мистечко" is "містечко".
	devTypePrefixRe = regexp.MustCompile(`^(?:жк|жилои комплекс|житловии комплекс|жилищныи комплекс|жилои квартал|житловии квартал|котеджне мистечко|коттеджныи городок|клубнии будинок|клубныи дом|микрораион|мкрн|квартал)(?: +|$)`)

	devParenRe = regexp.MustCompile(`\s*\([^()]*\)`)

	// Trailing building designators in folded space: "буд 5", "корпус 2а",
	// "дом 12 3", or a bare trailing number run.
	buildingSuffixRe = regexp.MustCompile(`(?: +(?:корпус|корп|будинок|буд|дом|секция|черга|очеред))? +\d[\d\p{L}]*$`)
)

// patternKind tells the scorer which bonus rules apply to a hit.
type patternKind int

const (
	kindTypePrefixed patternKind = iota
	kindBareName
	kindWordPair
)

// compiledPattern is one precompiled regexp for a development together with
// the scoring context it needs: the canonical cleaned-name rune length and
// the pattern class it belongs to. Every regexp captures the name span as
// group 1.
type compiledPattern struct {
	re      *regexp.Regexp
	kind    patternKind
	nameLen int
}

// cleanNames strips development-type prefixes, parenthetical content, and
// building-number suffixes from a raw development name and returns the folded
// cleaned variants. Parenthetical content ("ЖК Патріотика (Patriotika)")
// becomes its own variant alongside the outer name.
func cleanNames(raw string) []string {
	var rawForms []string
	for _, m := range devParenRe.FindAllString(raw, -1) {
		inner := strings.TrimSpace(strings.Trim(strings.TrimSpace(m), "()"))
		if inner != "" {
			rawForms = append(rawForms, inner)
		}
	}
	rawForms = append(rawForms, devParenRe.ReplaceAllString(raw, " "))

	seen := make(map[string]struct{}, len(rawForms))
	var out []string
	for _, rf := range rawForms {
		f := normalize.FoldText(rf)
		for {
			stripped := devTypePrefixRe.ReplaceAllString(f, "")
			stripped = buildingSuffixRe.ReplaceAllString(stripped, "")
			if stripped == f {
				break
			}
			f = stripped
		}
		if utf8.RuneCountInString(f) < 2 {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// typeKeywordAlt is the folded development-type keyword alternation used both
// inside type-prefixed patterns and for the preceded-by-keyword bonus.
const typeKeywordAlt = `(?:жк|житловии комплекс|жилои комплекс|жилищныи комплекс|комплекс|квартал|новобудова|новостроика)`

var typeKeywordBefore = regexp.MustCompile(typeKeywordAlt + ` $`)

// compilePatterns builds the three pattern classes for one cleaned name: the
// type-prefixed full name, the bare full name for names long enough to stand
// alone, and consecutive-word pairs for multiword names.
func compilePatterns(name string) []compiledPattern {
	nameLen := utf8.RuneCountInString(name)
	quoted := regexp.QuoteMeta(name)

	pats := []compiledPattern{{
		re:      regexp.MustCompile(`(?:^|[^\pL])` + typeKeywordAlt + ` (` + quoted + `)(?:$|[^\pL])`),
		kind:    kindTypePrefixed,
		nameLen: nameLen,
	}}

	if nameLen >= bareNameMinLen {
		pats = append(pats, compiledPattern{
			re:      regexp.MustCompile(`(?:^|[^\pL])(` + quoted + `)(?:$|[^\pL])`),
			kind:    kindBareName,
			nameLen: nameLen,
		})
	}

	words := strings.Fields(name)
	if significantWords(words) >= 2 {
		for i := 0; i+1 < len(words); i++ {
			if utf8.RuneCountInString(words[i]) < significantWordLen ||
				utf8.RuneCountInString(words[i+1]) < significantWordLen {
				continue
			}
			pair := regexp.QuoteMeta(words[i] + " " + words[i+1])
			pats = append(pats, compiledPattern{
				re:      regexp.MustCompile(`(?:^|[^\pL])(` + pair + `)(?:$|[^\pL])`),
				kind:    kindWordPair,
				nameLen: nameLen,
			})
		}
	}
	return pats
}

func significantWords(words []string) int {
	n := 0
	for _, w := range words {
		if utf8.RuneCountInString(w) >= significantWordLen {
			n++
		}
	}
	return n
}
