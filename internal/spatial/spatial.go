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

// Package spatial abstracts the geospatial index the resolver queries for
// point-in-polygon and nearest-street lookups.
package spatial

import "context"

// StreetHit is one canonical street returned by a proximity query.
type StreetHit struct {
	StreetID       int64
	GeoID          int64
	DistanceMeters float64
}

// Store is the external geospatial index. Queries are blocking reads with no
// internal retry; callers issue at most a scoped query plus one unscoped
// fallback per resolution.
type Store interface {
	// NearestStreets returns up to limit streets within maxDistance meters of
	// the point, nearest first. A geoID of 0 leaves the query unscoped.
	NearestStreets(ctx context.Context, lng, lat float64, geoID int64, limit int, maxDistance float64) ([]StreetHit, error)

	// GeoContaining returns the id of the smallest locality whose boundary
	// contains the point, or 0 when no boundary does.
	GeoContaining(ctx context.Context, lng, lat float64) (int64, error)
}
