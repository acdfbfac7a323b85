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

// Package reconcile implements the offline tiered street reconciler: exact
// name matching scoped to the record's locality, rename-history matching,
// then fuzzy matching over the city and the region. A single pass over
// in-memory indexes; re-running on unchanged inputs yields identical output.
package reconcile

import (
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/estato/geomatch/internal/catalog"
	"github.com/estato/geomatch/internal/fuzzy"
	"github.com/estato/geomatch/internal/mapping"
	"github.com/estato/geomatch/internal/match"
	"github.com/estato/geomatch/internal/normalize"
	"github.com/estato/geomatch/internal/renames"
)

// Tier confidence and acceptance constants.
const (
	exactConfNear  = 1.0
	exactConfFar   = 0.90
	renameConfNear = 0.95
	renameConfFar  = 0.85

	fuzzyCityMinLen       = 4
	fuzzyCityMaxLenDiff   = 0.30
	fuzzyCityThreshold    = 0.90
	fuzzyRegionMinLen     = 5
	fuzzyRegionMaxLenDiff = 0.25
	fuzzyRegionThreshold  = 0.92
)

// Record is one external street reference to reconcile.
type Record struct {
	ID          int64
	Names       []string
	SourceGeoID int64
	UsageCount  int
}

// Result is a successful reconciliation of one record.
type Result struct {
	SourceID   int64
	StreetID   int64
	Method     match.Method
	Confidence float64
}

// Outcome is the full product of one reconciliation run.
type Outcome struct {
	RunID     string
	Matches   []Result
	Unmatched []Record
	Skipped   []Record
	Counters  Counters
}

// Mappings converts the run's matches into persistable id mappings.
func (o *Outcome) Mappings(source string) []mapping.IDMapping {
	rows := make([]mapping.IDMapping, 0, len(o.Matches))
	for _, m := range o.Matches {
		rows = append(rows, mapping.IDMapping{
			Source:      source,
			EntityType:  mapping.EntityStreet,
			SourceID:    m.SourceID,
			LocalID:     m.StreetID,
			Confidence:  m.Confidence,
			MatchMethod: m.Method,
		})
	}
	return rows
}

// Reconciler matches external street records against the canonical catalog.
type Reconciler struct {
	hierarchy  *catalog.Hierarchy
	index      *catalog.StreetIndex
	renames    *renames.Table
	geoMapping map[int64]int64
	log        zerolog.Logger
}

// New wires a reconciler. geoMapping translates the external source's geo
// ids into canonical geo ids and must come from an already reconciled geo
// mapping; records whose geo is absent from it are never name-matched.
func New(h *catalog.Hierarchy, idx *catalog.StreetIndex, rt *renames.Table, geoMapping map[int64]int64, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		hierarchy:  h,
		index:      idx,
		renames:    rt,
		geoMapping: geoMapping,
		log:        log,
	}
}

// Run reconciles every record in input order.
func (r *Reconciler) Run(records []Record) *Outcome {
	out := &Outcome{RunID: uuid.New().String()}
	out.Counters.init()

	for _, rec := range records {
		out.Counters.Total++

		geoID, ok := r.geoMapping[rec.SourceGeoID]
		if !ok {
			out.Skipped = append(out.Skipped, rec)
			out.Counters.Skipped++
			continue
		}
		regionID := r.hierarchy.RegionOf(geoID)
		if regionID == 0 {
			// Mapped onto a geo outside any region: nothing to scope
			// matching to, same treatment as an unresolved geo.
			out.Skipped = append(out.Skipped, rec)
			out.Counters.Skipped++
			continue
		}

		if cand := r.matchRecord(rec, geoID, regionID); cand != nil {
			out.Matches = append(out.Matches, Result{
				SourceID:   rec.ID,
				StreetID:   cand.StreetID,
				Method:     cand.Method,
				Confidence: cand.Confidence,
			})
			out.Counters.record(cand)
		} else {
			out.Unmatched = append(out.Unmatched, rec)
			out.Counters.Unmatched++
			if rec.UsageCount == 0 {
				out.Counters.UnmatchedZeroUsage++
			}
		}
	}

	r.log.Info().
		Str("run_id", out.RunID).
		Int("total", out.Counters.Total).
		Int("matched", out.Counters.Matched).
		Int("unmatched", out.Counters.Unmatched).
		Int("skipped", out.Counters.Skipped).
		Msg("reconciliation finished")
	return out
}

func (r *Reconciler) matchRecord(rec Record, geoID, regionID int64) *match.Candidate {
	variants := variantsForRecord(rec)
	if len(variants) == 0 {
		return nil
	}
	cityID := r.hierarchy.CityOf(geoID)

	if best := r.exactTier(variants, geoID, cityID, regionID, exactConfNear, exactConfFar, match.MethodExactName); best != nil {
		return best
	}
	if best := r.renameTier(variants, geoID, cityID, regionID); best != nil {
		return best
	}
	if best := r.fuzzyScan(cityCandidates(r.index.Region(regionID), geoID, cityID), variants, geoID, cityID,
		fuzzyCityMinLen, fuzzyCityMaxLenDiff, fuzzyCityThreshold, match.MethodFuzzyCity); best != nil {
		return best
	}
	return r.fuzzyScan(r.index.Region(regionID), variants, geoID, cityID,
		fuzzyRegionMinLen, fuzzyRegionMaxLenDiff, fuzzyRegionThreshold, match.MethodFuzzyRegion)
}

// exactTier scans variants in order against the region's exact-name index.
// A priority-1 hit cannot be improved and stops the scan.
func (r *Reconciler) exactTier(variants []string, geoID, cityID, regionID int64, confNear, confFar float64, method match.Method) *match.Candidate {
	var best *match.Candidate
	for _, v := range variants {
		for _, cand := range r.index.Exact(regionID, v) {
			c := r.scored(cand, geoID, cityID, confNear, confFar, method)
			if match.Better(c, best) {
				cc := c
				best = &cc
			}
			if c.Priority == match.PrioritySameGeo {
				return best
			}
		}
	}
	return best
}

// renameTier repeats the exact geo-scoped lookup over the current-name
// variants of every rename the record's variants hit.
func (r *Reconciler) renameTier(variants []string, geoID, cityID, regionID int64) *match.Candidate {
	var best *match.Candidate
	for _, v := range variants {
		for _, newVar := range r.renames.Lookup(v) {
			for _, cand := range r.index.Exact(regionID, newVar) {
				c := r.scored(cand, geoID, cityID, renameConfNear, renameConfFar, match.MethodRenamed)
				if match.Better(c, best) {
					cc := c
					best = &cc
				}
				if c.Priority == match.PrioritySameGeo {
					return best
				}
			}
		}
	}
	return best
}

func (r *Reconciler) fuzzyScan(cands []*catalog.IndexedStreet, variants []string, geoID, cityID int64,
	minLen int, maxLenDiff, threshold float64, method match.Method) *match.Candidate {
	var best *match.Candidate
	for _, v := range variants {
		lv := utf8.RuneCountInString(v)
		if lv < minLen {
			continue
		}
		for _, cand := range cands {
			for _, cv := range cand.Variants {
				lc := utf8.RuneCountInString(cv)
				if lc < minLen {
					continue
				}
				longer, diff := lv, lc-lv
				if lc > lv {
					longer = lc
				} else {
					diff = lv - lc
				}
				if float64(diff) > maxLenDiff*float64(longer) {
					continue
				}
				sim := fuzzy.Similarity(v, cv)
				if sim < threshold {
					continue
				}
				c := match.Candidate{
					StreetID:   cand.Street.ID,
					GeoID:      cand.Street.GeoID,
					Priority:   r.priority(cand, geoID, cityID),
					Confidence: sim,
					Method:     method,
				}
				if match.Better(c, best) {
					cc := c
					best = &cc
				}
			}
		}
	}
	return best
}

func (r *Reconciler) scored(cand *catalog.IndexedStreet, geoID, cityID int64, confNear, confFar float64, method match.Method) match.Candidate {
	p := r.priority(cand, geoID, cityID)
	conf := confNear
	if p == match.PrioritySameRegion {
		conf = confFar
	}
	return match.Candidate{
		StreetID:   cand.Street.ID,
		GeoID:      cand.Street.GeoID,
		Priority:   p,
		Confidence: conf,
		Method:     method,
	}
}

// priority ranks locality closeness: the exact geo, then the same city
// (including the case where the record's geo is the city that contains the
// candidate's sub-district), then the shared region.
func (r *Reconciler) priority(cand *catalog.IndexedStreet, geoID, cityID int64) int {
	if cand.Street.GeoID == geoID {
		return match.PrioritySameGeo
	}
	if cand.CityID != 0 && (cand.CityID == cityID || cand.CityID == geoID) {
		return match.PrioritySameCity
	}
	return match.PrioritySameRegion
}

// cityCandidates narrows a region's candidates to the record's city or
// exact geo for the first fuzzy tier.
func cityCandidates(cands []*catalog.IndexedStreet, geoID, cityID int64) []*catalog.IndexedStreet {
	out := make([]*catalog.IndexedStreet, 0, len(cands))
	for _, cand := range cands {
		if cand.Street.GeoID == geoID || (cand.CityID != 0 && (cand.CityID == cityID || cand.CityID == geoID)) {
			out = append(out, cand)
		}
	}
	return out
}

func variantsForRecord(rec Record) []string {
	set := make(map[string]struct{})
	for _, n := range rec.Names {
		for _, v := range normalize.Variants(n, normalize.Options{}) {
			set[v] = struct{}{}
		}
	}
	return sortedKeys(set)
}
