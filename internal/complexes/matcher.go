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

// Package complexes matches listings to named residential developments by
// precompiled name patterns or, when available, by coordinates. A matched
// development carrying a street id anchors street resolution with higher
// precision than any text signal.
package complexes

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/estato/geomatch/internal/match"
	"github.com/estato/geomatch/internal/normalize"
)

// Accepted minimum scores. Batch ingestion tolerates weaker hits because a
// reviewer sees the output; authoritative lookups do not.
const (
	BatchMinScore         = 0.45
	AuthoritativeMinScore = 0.6
)

const (
	spanWeight        = 0.6
	earlyTextBonus    = 0.2
	typeKeywordBonus  = 0.2
	earlyTextRunes    = 100
	maxCenterDistance = 100.0 // meters
	earthRadiusMeters = 6371000.0
)

// Point is a WGS84 coordinate.
type Point struct {
	Lng float64
	Lat float64
}

// Development is one named residential development from the canonical
// catalog. Polygon, when present, is a single outer ring; Center is the
// fallback for developments digitized as a point. StreetID of 0 means the
// development is not tied to a canonical street.
type Development struct {
	ID       int64
	Names    []string
	StreetID int64
	GeoID    int64
	Center   *Point
	Polygon  []Point
}

// Match is an accepted development match.
type Match struct {
	Development    *Development
	Score          float64
	Method         match.Method
	DistanceMeters float64
}

type compiledDev struct {
	dev      *Development
	patterns []compiledPattern
}

// Matcher holds the precompiled patterns for every known development. It is
// immutable after New; concurrent MatchText/MatchPoint calls need no locking.
type Matcher struct {
	devs []compiledDev
}

// New compiles patterns for every development. Developments whose names all
// clean down to nothing are kept for coordinate matching only.
func New(devs []Development) *Matcher {
	sorted := make([]Development, len(devs))
	copy(sorted, devs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	m := &Matcher{devs: make([]compiledDev, 0, len(sorted))}
	for i := range sorted {
		cd := compiledDev{dev: &sorted[i]}
		for _, raw := range sorted[i].Names {
			for _, name := range cleanNames(raw) {
				cd.patterns = append(cd.patterns, compilePatterns(name)...)
			}
		}
		m.devs = append(m.devs, cd)
	}
	return m
}

// Len returns the number of known developments.
func (m *Matcher) Len() int { return len(m.devs) }

// MatchText scans the text against every development's patterns and returns
// the best hit scoring at or above minScore. Scoring favors full-name spans,
// mentions early in the text, and mentions introduced by a development-type
// keyword. Ties resolve to the lower development id.
func (m *Matcher) MatchText(text string, minScore float64) (Match, bool) {
	folded := normalize.FoldText(text)
	if folded == "" {
		return Match{}, false
	}

	var best Match
	found := false
	for _, cd := range m.devs {
		score, ok := cd.bestScore(folded)
		if !ok || score < minScore {
			continue
		}
		if !found || score > best.Score {
			best = Match{Development: cd.dev, Score: score, Method: match.MethodTextFound}
			found = true
		}
	}
	return best, found
}

func (cd compiledDev) bestScore(folded string) (float64, bool) {
	var best float64
	found := false
	for _, p := range cd.patterns {
		loc := p.re.FindStringSubmatchIndex(folded)
		if loc == nil {
			continue
		}
		start, end := loc[2], loc[3]
		span := utf8.RuneCountInString(folded[start:end])

		score := spanWeight * math.Min(1, float64(span)/float64(p.nameLen))
		if utf8.RuneCountInString(folded[:start]) < earlyTextRunes {
			score += earlyTextBonus
		}
		if p.kind == kindTypePrefixed || typeKeywordBefore.MatchString(folded[:start]) {
			score += typeKeywordBonus
		}
		if score > 1 {
			score = 1
		}
		if score > best {
			best = score
			found = true
		}
	}
	return best, found
}

// MatchPoint matches by geometry: a development whose polygon contains the
// point wins outright; otherwise the nearest development center within
// maxCenterDistance meters. Containment ties resolve to the lower id via the
// compile-time sort.
func (m *Matcher) MatchPoint(lng, lat float64) (Match, bool) {
	for _, cd := range m.devs {
		if len(cd.dev.Polygon) >= 3 && pointInRing(lng, lat, cd.dev.Polygon) {
			return Match{Development: cd.dev, Score: 1, Method: match.MethodCoordinates}, true
		}
	}

	var best Match
	found := false
	for _, cd := range m.devs {
		if cd.dev.Center == nil {
			continue
		}
		d := haversine(lat, lng, cd.dev.Center.Lat, cd.dev.Center.Lng)
		if d > maxCenterDistance {
			continue
		}
		if !found || d < best.DistanceMeters {
			best = Match{Development: cd.dev, Score: 1, Method: match.MethodCoordinates, DistanceMeters: d}
			found = true
		}
	}
	return best, found
}

// Match prefers coordinates over text: geometry is trusted when it hits, text
// is the fallback for listings with only approximate coordinates.
func (m *Matcher) Match(lng, lat float64, hasCoords bool, text string, minScore float64) (Match, bool) {
	if hasCoords {
		if mt, ok := m.MatchPoint(lng, lat); ok {
			return mt, true
		}
	}
	if text == "" {
		return Match{}, false
	}
	return m.MatchText(text, minScore)
}

// pointInRing is the even-odd crossing test over one closed ring. Vertices
// need not repeat the first point at the end.
func pointInRing(lng, lat float64, ring []Point) bool {
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		pi, pj := ring[i], ring[j]
		if (pi.Lat > lat) != (pj.Lat > lat) &&
			lng < (pj.Lng-pi.Lng)*(lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lng {
			inside = !inside
		}
		j = i
	}
	return inside
}

func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	const rad = math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
