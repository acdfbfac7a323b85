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

package normalize

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Options controls variant derivation.
type Options struct {
	// NoBareSurnames disables standalone per-word variants. Rename datasets
	// and other sources carrying full official names set this.
	NoBareSurnames bool
}

var parenRe = regexp.MustCompile(`\(([^()]*)\)`)

// bareSurnameMinLen is the minimum rune length for a single word to stand in
// for the whole name ("Хмельницького" alone matching "Богдана Хмельницького").
const bareSurnameMinLen = 5

// initialMaxLen: words shorter than this are treated as initials and dropped
// for the initials-stripped variant.
const initialMaxLen = 3

// Variants derives the full normalized variant set for a raw display name.
// Every variant is lowercase, at least two runes long, and present in both
// its soft and cross folded forms. The result is sorted for deterministic
// iteration. Nil-safe and total: empty or unusable input yields an empty set.
func Variants(raw string, opts Options) []string {
	set := make(map[string]struct{})

	for _, form := range expandParenthetical(raw) {
		addForm(set, form, opts)
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// expandParenthetical splits "Name (Alternate)" into the full string, the
// alternate alone, and the name with the parenthetical removed. Each is
// normalized independently.
func expandParenthetical(raw string) []string {
	forms := []string{raw}
	m := parenRe.FindStringSubmatch(raw)
	if m == nil {
		return forms
	}
	if alt := strings.TrimSpace(m[1]); alt != "" {
		forms = append(forms, alt)
	}
	if rest := strings.TrimSpace(parenRe.ReplaceAllString(raw, " ")); rest != "" {
		forms = append(forms, rest)
	}
	return forms
}

func addForm(set map[string]struct{}, form string, opts Options) {
	soft := Soft(form)
	if soft == "" {
		return
	}
	addBothFolds(set, soft)

	words := strings.Fields(soft)

	// Reversed order for exactly two meaningful words: surname-first vs
	// given-name-first references.
	if len(words) == 2 {
		addBothFolds(set, words[1]+" "+words[0])
	}

	// Initials-stripped variant: "б хмельницького" -> "хмельницького".
	stripped := words[:0:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) >= initialMaxLen {
			stripped = append(stripped, w)
		}
	}
	if len(stripped) > 0 && len(stripped) < len(words) {
		addBothFolds(set, strings.Join(stripped, " "))
		if len(stripped) == 2 {
			addBothFolds(set, stripped[1]+" "+stripped[0])
		}
	}

	// Bare-surname variants: each sufficiently long word stands alone,
	// unless the name joins two people with a conjunction.
	if !opts.NoBareSurnames && len(words) > 1 && !hasDualConjunction(words) {
		for _, w := range words {
			if utf8.RuneCountInString(w) >= bareSurnameMinLen {
				addBothFolds(set, w)
			}
		}
	}
}

func addBothFolds(set map[string]struct{}, s string) {
	for _, v := range []string{Soft(s), Cross(s)} {
		if utf8.RuneCountInString(v) >= minVariantLen {
			set[v] = struct{}{}
		}
	}
}

func hasDualConjunction(words []string) bool {
	for _, w := range words {
		if _, ok := dualNameConjunctions[w]; ok {
			return true
		}
	}
	return false
}
