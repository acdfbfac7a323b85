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

package resolver

import (
	"sync"

	"github.com/mmcloughlin/geohash"

	"github.com/estato/geomatch/internal/catalog"
	"github.com/estato/geomatch/internal/normalize"
)

// coordKeyPrecision is the geohash length for memo keys. Ten characters is
// roughly one meter, matching the precision sources report coordinates at.
const coordKeyPrecision = 10

// NameCache holds the precomputed name variants of every canonical street.
// It is loaded once at startup and rebuilt only on an explicit Reload;
// concurrent readers take the read lock only for the map lookup.
type NameCache struct {
	mu       sync.RWMutex
	variants map[int64][]string
}

// NewNameCache returns an empty cache; call Reload before resolving.
func NewNameCache() *NameCache {
	return &NameCache{variants: make(map[int64][]string)}
}

// Reload rebuilds the variant map from the canonical street catalog,
// replacing the previous contents atomically.
func (c *NameCache) Reload(streets []catalog.Street) {
	variants := make(map[int64][]string, len(streets))
	for _, s := range streets {
		var all []string
		for _, name := range s.Names() {
			all = append(all, normalize.Variants(name, normalize.Options{})...)
		}
		if len(all) > 0 {
			variants[s.ID] = dedupVariants(all)
		}
	}

	c.mu.Lock()
	c.variants = variants
	c.mu.Unlock()
}

// Variants returns the cached variants for a street, or nil if unknown. The
// returned slice is shared; callers must not mutate it.
func (c *NameCache) Variants(streetID int64) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.variants[streetID]
}

// Len returns the number of streets with at least one variant.
func (c *NameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.variants)
}

func dedupVariants(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// CoordCache memoizes text-free resolutions by coordinates rounded to ~1m.
// It grows unbounded during a batch run; callers clear it between runs.
// Duplicate recomputation under concurrency is acceptable, staleness is not a
// concern because the inputs are immutable coordinates.
type CoordCache struct {
	mu      sync.RWMutex
	entries map[string]Resolution
}

// NewCoordCache returns an empty memo cache.
func NewCoordCache() *CoordCache {
	return &CoordCache{entries: make(map[string]Resolution)}
}

func coordKey(lng, lat float64) string {
	return geohash.EncodeWithPrecision(lat, lng, coordKeyPrecision)
}

// Get returns the memoized resolution for the point, if any.
func (c *CoordCache) Get(lng, lat float64) (Resolution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[coordKey(lng, lat)]
	return res, ok
}

// Put memoizes a resolution for the point.
func (c *CoordCache) Put(lng, lat float64, res Resolution) {
	c.mu.Lock()
	c.entries[coordKey(lng, lat)] = res
	c.mu.Unlock()
}

// Clear drops all memoized entries.
func (c *CoordCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]Resolution)
	c.mu.Unlock()
}

// Len returns the number of memoized points.
func (c *CoordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
