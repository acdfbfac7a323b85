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

// Hierarchy answers locality questions over the canonical geo tree: which
// city and region a geo belongs to, and whether one geo contains another.
type Hierarchy struct {
	geos map[int64]*Geo
}

// NewHierarchy indexes the geo catalog. The input slice is not retained.
func NewHierarchy(geos []Geo) *Hierarchy {
	h := &Hierarchy{geos: make(map[int64]*Geo, len(geos))}
	for i := range geos {
		g := geos[i]
		h.geos[g.ID] = &g
	}
	return h
}

// Geo returns the node for an id.
func (h *Hierarchy) Geo(id int64) (*Geo, bool) {
	g, ok := h.geos[id]
	return g, ok
}

// Contains reports whether parent strictly contains child, using nested-set
// range comparison.
func (h *Hierarchy) Contains(parentID, childID int64) bool {
	p, ok := h.geos[parentID]
	if !ok {
		return false
	}
	c, ok := h.geos[childID]
	if !ok {
		return false
	}
	return p.Lft < c.Lft && c.Rgt < p.Rgt
}

// CityOf returns the id of the city (or standalone village) the geo belongs
// to: the geo itself when it is a city or village, otherwise the nearest
// such ancestor. Zero when none exists.
func (h *Hierarchy) CityOf(id int64) int64 {
	for g, ok := h.geos[id]; ok; g, ok = h.geos[g.ParentID] {
		if g.Type == GeoTypeCity || g.Type == GeoTypeVillage {
			return g.ID
		}
		if g.ParentID == 0 {
			break
		}
	}
	return 0
}

// RegionOf returns the id of the owning region, zero when none exists.
func (h *Hierarchy) RegionOf(id int64) int64 {
	for g, ok := h.geos[id]; ok; g, ok = h.geos[g.ParentID] {
		if g.Type == GeoTypeRegion {
			return g.ID
		}
		if g.ParentID == 0 {
			break
		}
	}
	return 0
}
