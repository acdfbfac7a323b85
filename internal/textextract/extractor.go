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

// Package textextract pulls a single street mention out of free listing
// text. Best effort only: it is one weak signal for the resolver, not
// an authoritative parser.
package textextract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

// Mention is an extracted street reference.
type Mention struct {
	Name      string
	TypeLabel string
}

const minMentionLen = 3

// Patterns are compiled once and used statelessly per call; no shared
// cursor state survives between extractions.
var (
	ukKeywords = `вулиця|вул\.?|провулок|пров\.?|проспект|просп\.?|пр-т|бульвар|б-р|площа|пл\.?|шосе|узвіз|набережна|наб\.?`
	ruKeywords = `улица|ул\.?|переулок|пер\.?|проспект|просп\.?|площадь|пл\.?|шоссе|бульвар|набережная`

	nameSpan = `(\p{Lu}[\pL'’\-]*(?:\s+\p{Lu}[\pL'’\-]*)*)`

	patterns = []*regexp.Regexp{
		// type keyword first, Ukrainian then Russian
		regexp.MustCompile(`(?:^|[^\pL])((?i)` + ukKeywords + `)\s+` + nameSpan),
		regexp.MustCompile(`(?:^|[^\pL])((?i)` + ruKeywords + `)\s+` + nameSpan),
		// capitalized name followed by the type word
		regexp.MustCompile(nameSpan + `\s+((?i)вулиця|вул\.?|улица|ул\.?)(?:$|[^\pL])`),
	}
)

// canonicalLabels folds abbreviated keyword spellings onto the full form.
var canonicalLabels = map[string]string{
	"вул": "вулиця", "пров": "провулок", "просп": "проспект", "пр-т": "проспект",
	"б-р": "бульвар", "пл": "площа", "наб": "набережна",
	"ул": "улица", "пер": "переулок",
}

// Extract returns the first street mention found across the pattern list,
// scanning sentence by sentence so a span never crosses a clause boundary.
// The captured span is additionally bounded by the first comma or digit run
// because the name character class admits neither. When no sentence yields
// a mention the whole text is scanned once as a fallback.
func Extract(text string) (Mention, bool) {
	if strings.TrimSpace(text) == "" {
		return Mention{}, false
	}
	for _, sentence := range sentences(text) {
		if m, ok := scan(sentence); ok {
			return m, true
		}
	}
	return scan(text)
}

func scan(span string) (Mention, bool) {
	for i, re := range patterns {
		m := re.FindStringSubmatch(span)
		if m == nil {
			continue
		}
		keyword, name := m[1], m[2]
		if i == len(patterns)-1 {
			// name-first pattern captures in the opposite order
			keyword, name = m[2], m[1]
		}
		name = strings.Trim(name, " -’'")
		if utf8.RuneCountInString(name) < minMentionLen {
			continue
		}
		return Mention{Name: name, TypeLabel: label(keyword)}, true
	}
	return Mention{}, false
}

// trailingAbbrev marks sentence fragments the segmenter cut at an
// abbreviation dot ("вул.", "просп."); these are glued back onto the next
// sentence so the keyword and its name stay in one span.
var trailingAbbrev = regexp.MustCompile(`(?i)(?:вул|ул|пров|просп|пл|пер|наб|б-р|акад|ген|св)\.$`)

// sentences splits text into clause spans. When segmentation fails the
// whole text is handled as one span.
func sentences(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return []string{text}
	}
	sents := doc.Sentences()
	if len(sents) == 0 {
		return []string{text}
	}
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		txt := strings.TrimSpace(s.Text)
		if txt == "" {
			continue
		}
		if n := len(out); n > 0 && trailingAbbrev.MatchString(out[n-1]) {
			out[n-1] = out[n-1] + " " + txt
			continue
		}
		out = append(out, txt)
	}
	return out
}

func label(keyword string) string {
	k := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(keyword)), ".")
	if full, ok := canonicalLabels[k]; ok {
		return full
	}
	return k
}
