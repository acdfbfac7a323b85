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

// Package catalog holds the read-only canonical geo and street catalogs the
// matching engine reconciles against. Catalogs are maintained externally;
// this package only loads and indexes them.
package catalog

// GeoType classifies a canonical geo node.
type GeoType string

const (
	GeoTypeCountry  GeoType = "country"
	GeoTypeRegion   GeoType = "region"
	GeoTypeCity     GeoType = "city"
	GeoTypeDistrict GeoType = "district"
	GeoTypeVillage  GeoType = "village"
)

// Geo is one canonical locality. Lft/Rgt/Lvl are nested-set coordinates:
// ancestor and descendant checks are integer range comparisons, no tree
// traversal needed.
type Geo struct {
	ID       int64
	NameUK   string
	NameRU   string
	Type     GeoType
	ParentID int64
	Lft      int
	Rgt      int
	Lvl      int
}

// Names returns the non-empty display names across languages.
func (g *Geo) Names() []string {
	return nonEmpty(g.NameUK, g.NameRU)
}

// Street is one canonical street. Its geometry stays in the geospatial
// store and is reached only through spatial queries.
type Street struct {
	ID     int64
	NameUK string
	NameRU string
	GeoID  int64
}

// Names returns the non-empty display names across languages.
func (s *Street) Names() []string {
	return nonEmpty(s.NameUK, s.NameRU)
}

func nonEmpty(names ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
