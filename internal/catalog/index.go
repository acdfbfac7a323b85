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

package catalog

import (
	"sort"

	"github.com/estato/geomatch/internal/normalize"
)

// IndexedStreet is a canonical street with its precomputed variant set and
// resolved locality ancestors, ready for exact and fuzzy matching.
type IndexedStreet struct {
	Street   *Street
	Variants []string
	CityID   int64
	RegionID int64
}

// StreetIndex holds canonical streets indexed per region: an exact map from
// every normalized name variant, and the full candidate list for fuzzy
// passes.
type StreetIndex struct {
	exact map[int64]map[string][]*IndexedStreet
	all   map[int64][]*IndexedStreet
}

// BuildStreetIndex normalizes and indexes the street catalog. Streets are
// sorted by id first so index iteration order is deterministic across runs.
// Streets whose region cannot be resolved are skipped: they cannot take part
// in region-scoped matching.
func BuildStreetIndex(h *Hierarchy, streets []Street) *StreetIndex {
	sorted := make([]Street, len(streets))
	copy(sorted, streets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	idx := &StreetIndex{
		exact: make(map[int64]map[string][]*IndexedStreet),
		all:   make(map[int64][]*IndexedStreet),
	}
	for i := range sorted {
		s := &sorted[i]
		regionID := h.RegionOf(s.GeoID)
		if regionID == 0 {
			continue
		}
		variants := variantsForNames(s.Names())
		if len(variants) == 0 {
			continue
		}
		entry := &IndexedStreet{
			Street:   s,
			Variants: variants,
			CityID:   h.CityOf(s.GeoID),
			RegionID: regionID,
		}
		idx.all[regionID] = append(idx.all[regionID], entry)
		byName := idx.exact[regionID]
		if byName == nil {
			byName = make(map[string][]*IndexedStreet)
			idx.exact[regionID] = byName
		}
		for _, v := range variants {
			byName[v] = append(byName[v], entry)
		}
	}
	return idx
}

// Exact returns the candidates registered under a normalized name within a
// region.
func (idx *StreetIndex) Exact(regionID int64, name string) []*IndexedStreet {
	byName := idx.exact[regionID]
	if byName == nil {
		return nil
	}
	return byName[name]
}

// Region returns every indexed street of a region, for fuzzy passes.
func (idx *StreetIndex) Region(regionID int64) []*IndexedStreet {
	return idx.all[regionID]
}

func variantsForNames(names []string) []string {
	set := make(map[string]struct{})
	for _, n := range names {
		for _, v := range normalize.Variants(n, normalize.Options{}) {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
