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

// Package resolver fuses coordinate proximity with textual street mentions to
// pick a canonical street for one listing in real time. Resolution is
// deterministic for a fixed (coordinates, text, candidate set) and holds no
// per-call state, so calls may run concurrently.
package resolver

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/estato/geomatch/internal/complexes"
	"github.com/estato/geomatch/internal/fuzzy"
	"github.com/estato/geomatch/internal/match"
	"github.com/estato/geomatch/internal/normalize"
	"github.com/estato/geomatch/internal/spatial"
	"github.com/estato/geomatch/internal/textextract"
)

const (
	// DefaultCandidateLimit and DefaultRadiusMeters bound the spatial query.
	DefaultCandidateLimit = 10
	DefaultRadiusMeters   = 500.0

	// textAcceptThreshold gates the fuzzy score of an extracted street name
	// combined with the proximity bonus.
	textAcceptThreshold = 0.7

	// proximityBonusMax is added in full to a candidate at distance zero and
	// fades linearly to nothing at the search radius. It breaks near-ties in
	// favor of the closer street without overriding a clearly better name.
	proximityBonusMax = 0.05

	// substringMinLen keeps degenerate short variants from matching inside
	// unrelated words during the raw substring scan.
	substringMinLen = 4

	// nameLenBonusPerRune rewards longer substring hits; a longer mention is
	// less likely to be accidental.
	nameLenBonusPerRune = 0.005
	nameLenBonusMax     = 0.1
)

// Resolution is the outcome of one resolve call.
type Resolution struct {
	StreetID       int64
	GeoID          int64
	Method         match.Method
	Confidence     float64
	DistanceMeters float64
}

// Request is one listing to resolve. Text and GeoIDHint are optional; Source
// feeds the trust policy.
type Request struct {
	Lng       float64
	Lat       float64
	Text      string
	GeoIDHint int64
	Source    string
}

// Resolver layers the complex anchor, text evidence, and plain proximity over
// candidates from the spatial store. Names and development patterns live in
// read-only caches loaded before serving; Memo is optional and only consulted
// for text-free requests.
type Resolver struct {
	store  spatial.Store
	names  *NameCache
	devs   *complexes.Matcher
	memo   *CoordCache
	policy *SourcePolicy
	limit  int
	radius float64
	log    zerolog.Logger
}

// Option tunes a Resolver.
type Option func(*Resolver)

// WithCandidateLimit overrides the spatial query limit.
func WithCandidateLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithRadius overrides the spatial query radius in meters.
func WithRadius(m float64) Option {
	return func(r *Resolver) {
		if m > 0 {
			r.radius = m
		}
	}
}

// WithComplexes installs the named-development anchor.
func WithComplexes(m *complexes.Matcher) Option {
	return func(r *Resolver) { r.devs = m }
}

// WithMemo installs the coordinate memoization cache for batch runs.
func WithMemo(c *CoordCache) Option {
	return func(r *Resolver) { r.memo = c }
}

// WithPolicy installs the per-source text trust policy.
func WithPolicy(p *SourcePolicy) Option {
	return func(r *Resolver) { r.policy = p }
}

// New builds a Resolver over the given spatial store and name cache.
func New(store spatial.Store, names *NameCache, log zerolog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		names:  names,
		limit:  DefaultCandidateLimit,
		radius: DefaultRadiusMeters,
		log:    log,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve picks the canonical street for one listing. The layering is fixed:
// a development with a known street short-circuits everything; otherwise
// candidates come from the spatial store (scoped to the hint first, then
// unscoped), and text evidence refines the choice before plain proximity
// decides. ok is false when nothing acceptable was found; err is reserved for
// spatial store failures.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Resolution, bool, error) {
	if res, ok := r.anchorOnComplex(req); ok {
		return res, true, nil
	}

	textFree := req.Text == ""
	if textFree && r.memo != nil {
		if res, ok := r.memo.Get(req.Lng, req.Lat); ok {
			return res, res.StreetID != 0, nil
		}
	}

	res, ok, err := r.resolveFromCandidates(ctx, req)
	if err != nil {
		return Resolution{}, false, err
	}
	if textFree && r.memo != nil {
		r.memo.Put(req.Lng, req.Lat, res)
	}
	return res, ok, nil
}

func (r *Resolver) anchorOnComplex(req Request) (Resolution, bool) {
	if r.devs == nil {
		return Resolution{}, false
	}
	hasCoords := req.Lng != 0 || req.Lat != 0
	m, ok := r.devs.Match(req.Lng, req.Lat, hasCoords, req.Text, complexes.AuthoritativeMinScore)
	if !ok || m.Development.StreetID == 0 {
		return Resolution{}, false
	}
	r.log.Debug().
		Int64("complex_id", m.Development.ID).
		Int64("street_id", m.Development.StreetID).
		Str("method", string(m.Method)).
		Msg("complex anchor resolved street")
	return Resolution{
		StreetID:       m.Development.StreetID,
		GeoID:          m.Development.GeoID,
		Method:         m.Method,
		Confidence:     m.Score,
		DistanceMeters: m.DistanceMeters,
	}, true
}

func (r *Resolver) resolveFromCandidates(ctx context.Context, req Request) (Resolution, bool, error) {
	cands, err := r.candidates(ctx, req)
	if err != nil {
		return Resolution{}, false, err
	}
	if len(cands) == 0 {
		return Resolution{}, false, nil
	}

	trustText := req.Text != "" && r.policy.TrustTextOverCoordinates(req.Source)

	if req.Text != "" {
		if res, ok := r.fromParsedText(req.Text, cands); ok {
			return res, true, nil
		}
		if res, ok := r.fromFoundText(req.Text, cands); ok {
			return res, true, nil
		}
	}
	if trustText {
		// The source's coordinates are approximate and the text named no
		// candidate street; a nearest pick here would be a guess.
		return Resolution{}, false, nil
	}

	nearest := cands[0]
	return Resolution{
		StreetID:       nearest.StreetID,
		GeoID:          nearest.GeoID,
		Method:         match.MethodNearest,
		Confidence:     distanceBucket(nearest.DistanceMeters),
		DistanceMeters: nearest.DistanceMeters,
	}, true, nil
}

// candidates issues the scoped query first and retries unscoped when the
// hint's area holds no streets within the radius.
func (r *Resolver) candidates(ctx context.Context, req Request) ([]spatial.StreetHit, error) {
	if req.GeoIDHint > 0 {
		hits, err := r.store.NearestStreets(ctx, req.Lng, req.Lat, req.GeoIDHint, r.limit, r.radius)
		if err != nil {
			return nil, fmt.Errorf("scoped street query: %w", err)
		}
		if len(hits) > 0 {
			return hits, nil
		}
	}
	hits, err := r.store.NearestStreets(ctx, req.Lng, req.Lat, 0, r.limit, r.radius)
	if err != nil {
		return nil, fmt.Errorf("unscoped street query: %w", err)
	}
	return hits, nil
}

// fromParsedText extracts a street mention and fuzzy-matches it against every
// candidate's name variants, with a small proximity bonus on near-ties.
func (r *Resolver) fromParsedText(text string, cands []spatial.StreetHit) (Resolution, bool) {
	mention, ok := textextract.Extract(text)
	if !ok {
		return Resolution{}, false
	}
	mentionVariants := normalize.Variants(mention.Name, normalize.Options{})
	if len(mentionVariants) == 0 {
		return Resolution{}, false
	}

	var best Resolution
	bestScore := 0.0
	for _, cand := range cands {
		sim := r.bestSimilarity(mentionVariants, cand.StreetID)
		if sim == 0 {
			continue
		}
		score := sim + proximityBonusMax*(1-cand.DistanceMeters/r.radius)
		if score > bestScore {
			bestScore = score
			best = Resolution{
				StreetID:       cand.StreetID,
				GeoID:          cand.GeoID,
				Method:         match.MethodTextParsed,
				Confidence:     clamp1(score),
				DistanceMeters: cand.DistanceMeters,
			}
		}
	}
	if bestScore <= textAcceptThreshold {
		return Resolution{}, false
	}
	return best, true
}

func (r *Resolver) bestSimilarity(mentionVariants []string, streetID int64) float64 {
	best := 0.0
	for _, mv := range mentionVariants {
		for _, cv := range r.names.Variants(streetID) {
			if s := fuzzy.Similarity(mv, cv); s > best {
				best = s
			}
		}
	}
	return best
}

// fromFoundText scans candidate name variants as raw substrings of the folded
// text. Cheaper than extraction and catches mentions the patterns missed;
// among hits the nearest candidate wins.
func (r *Resolver) fromFoundText(text string, cands []spatial.StreetHit) (Resolution, bool) {
	folded := normalize.FoldText(text)
	if folded == "" {
		return Resolution{}, false
	}

	var best Resolution
	bestLen := 0
	found := false
	for _, cand := range cands {
		hitLen := r.longestContained(folded, cand.StreetID)
		if hitLen == 0 {
			continue
		}
		// Candidates arrive nearest first, so the first hit is the nearest.
		if !found {
			best = r.foundResolution(cand, hitLen)
			bestLen = hitLen
			found = true
			continue
		}
		if best.DistanceMeters == cand.DistanceMeters && hitLen > bestLen {
			best = r.foundResolution(cand, hitLen)
			bestLen = hitLen
		}
	}
	return best, found
}

func (r *Resolver) foundResolution(cand spatial.StreetHit, hitLen int) Resolution {
	bonus := float64(hitLen) * nameLenBonusPerRune
	if bonus > nameLenBonusMax {
		bonus = nameLenBonusMax
	}
	return Resolution{
		StreetID:       cand.StreetID,
		GeoID:          cand.GeoID,
		Method:         match.MethodTextFound,
		Confidence:     clamp1(distanceBucket(cand.DistanceMeters) + bonus),
		DistanceMeters: cand.DistanceMeters,
	}
}

func (r *Resolver) longestContained(folded string, streetID int64) int {
	best := 0
	for _, v := range r.names.Variants(streetID) {
		n := utf8.RuneCountInString(v)
		if n < substringMinLen || n <= best {
			continue
		}
		if containsWord(folded, v) {
			best = n
		}
	}
	return best
}

// containsWord reports whether variant occurs in folded text on word
// boundaries. Folded text separates words with single spaces only.
func containsWord(folded, variant string) bool {
	for from := 0; from < len(folded); {
		i := strings.Index(folded[from:], variant)
		if i < 0 {
			return false
		}
		i += from
		before := i == 0 || folded[i-1] == ' '
		after := i+len(variant) == len(folded) || folded[i+len(variant)] == ' '
		if before && after {
			return true
		}
		from = i + 1
	}
	return false
}

func distanceBucket(meters float64) float64 {
	switch {
	case meters <= 50:
		return 0.9
	case meters <= 100:
		return 0.7
	case meters <= 200:
		return 0.5
	case meters <= 350:
		return 0.3
	default:
		return 0.1
	}
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
