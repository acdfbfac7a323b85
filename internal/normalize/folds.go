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
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Street-type words stripped during soft normalization. Both Ukrainian and
// Russian, full and abbreviated forms. Abbreviation dots are already gone by
// the time these are applied (clean replaces punctuation with spaces).
var streetTypeWords = map[string]struct{}{
	// Ukrainian
	"вулиця": {}, "вул": {},
	"провулок": {}, "пров": {},
	"проспект": {}, "просп": {}, "пр": {}, "пр-т": {},
	"площа": {}, "пл": {},
	"бульвар": {}, "б-р": {}, "бул": {},
	"шосе":       {},
	"узвіз":      {},
	"набережна":  {}, "наб": {},
	"тупик":      {},
	"мікрорайон": {}, "мкр": {},
	// Russian
	"улица": {}, "ул": {},
	"переулок": {}, "пер": {},
	"площадь": {},
	"шоссе":   {}, "ш": {},
	"набережная": {},
	"микрорайон": {},
}

// Honorific and rank words stripped during soft normalization. Streets named
// after people routinely carry these in one language and drop them in the
// other.
var honorificWords = map[string]struct{}{
	// Ukrainian
	"академіка": {}, "акад": {},
	"генерала": {}, "ген": {},
	"полковника": {},
	"майора":     {},
	"маршала":    {},
	"гетьмана":   {},
	"князя":      {},
	"святого":    {}, "святої": {}, "св": {},
	"героїв": {}, "героя": {},
	"професора": {}, "проф": {},
	// Russian (forms shared with Ukrainian appear once above)
	"академика":  {},
	"святому":    {},
	"героев":     {},
	"профессора": {},
}

// Conjunctions marking a street named after two people ("Щорса і Петрова").
// Their presence suppresses bare-surname variant generation.
var dualNameConjunctions = map[string]struct{}{
	"і": {}, "та": {}, "и": {},
}

// softFolds maps letters that exist in only one of the two alphabets onto
// their closest neighbour, so a name spelled in either language lands on the
// same soft form.
var softFolds = map[rune]rune{
	'ё': 'е',
	'ъ': 'ь',
	'ґ': 'г',
	'є': 'е',
	'ї': 'і',
}

// crossFolds is applied on top of softFolds and bridges the letter pairs
// where the two languages systematically diverge in the same name: the
// і/и vowel pair and the й/и pair. The soft sign and the apostrophe are
// removed outright, hyphens become spaces.
var crossFolds = map[rune]rune{
	'і': 'и',
	'й': 'и',
}

const minVariantLen = 2

// clean lowercases, canonicalizes to NFC, replaces punctuation and quote
// marks with spaces and collapses whitespace. Hyphens and apostrophes are
// word-internal in street names and survive cleaning; cross folding deals
// with them later.
func clean(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '\'' || r == '’' || r == 'ʼ':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return collapseSpaces(b.String())
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripAffixes removes street-type and honorific words in either language.
func stripAffixes(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, ok := streetTypeWords[w]; ok {
			continue
		}
		if _, ok := honorificWords[w]; ok {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func foldRunes(s string, table map[rune]rune) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if f, ok := table[r]; ok {
			r = f
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Soft produces the soft-normalized form of a display name: cleaned,
// affix-stripped, single-language letters folded. Idempotent.
func Soft(s string) string {
	s = clean(s)
	s = stripAffixes(s)
	return foldRunes(s, softFolds)
}

// Cross produces the cross-language form: soft normalization plus the
// divergent letter-pair folds, soft sign and apostrophe removal, and
// hyphens collapsed to spaces. Idempotent; bridges Ukrainian/Russian
// spellings of the same name.
func Cross(s string) string {
	return applyCross(Soft(s))
}

// FoldText applies the full soft+cross letter folding to arbitrary running
// text without stripping any words. Used where word positions in the text
// matter, e.g. scoring pattern matches against listing descriptions.
func FoldText(s string) string {
	return applyCross(foldRunes(clean(s), softFolds))
}

func applyCross(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case 'ь', '\'', '’', 'ʼ':
			continue
		case '-':
			b.WriteRune(' ')
		default:
			if f, ok := crossFolds[r]; ok {
				r = f
			}
			b.WriteRune(r)
		}
	}
	return collapseSpaces(b.String())
}
