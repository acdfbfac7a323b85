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

package spatial

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostGISStore answers proximity queries against street centerlines and geo
// boundaries stored in PostGIS. Geometries are WGS84; distances are computed
// on the geography type so they come back in meters.
type PostGISStore struct {
	pool *pgxpool.Pool
}

// NewPostGISStore wraps an existing connection pool.
func NewPostGISStore(pool *pgxpool.Pool) *PostGISStore {
	return &PostGISStore{pool: pool}
}

// NearestStreets returns up to limit streets within maxDistance meters of the
// point, nearest first. geoID of 0 leaves the query unscoped.
func (s *PostGISStore) NearestStreets(ctx context.Context, lng, lat float64, geoID int64, limit int, maxDistance float64) ([]StreetHit, error) {
	const q = `
		SELECT id, geo_id,
		       ST_Distance(line::geography, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) AS dist
		FROM streets
		WHERE ST_DWithin(line::geography, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		  AND ($4 = 0 OR geo_id = $4)
		ORDER BY dist, id
		LIMIT $5`

	rows, err := s.pool.Query(ctx, q, lng, lat, maxDistance, geoID, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to query nearest streets: %w", err)
	}
	defer rows.Close()

	var hits []StreetHit
	for rows.Next() {
		var h StreetHit
		if err := rows.Scan(&h.StreetID, &h.GeoID, &h.DistanceMeters); err != nil {
			return nil, fmt.Errorf("unable to scan street hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("street hit rows: %w", err)
	}
	return hits, nil
}

// GeoContaining returns the smallest locality boundary containing the point,
// or 0 when the point falls outside every boundary.
func (s *PostGISStore) GeoContaining(ctx context.Context, lng, lat float64) (int64, error) {
	const q = `
		SELECT id
		FROM geos
		WHERE boundary IS NOT NULL
		  AND ST_Contains(boundary, ST_SetSRID(ST_MakePoint($1, $2), 4326))
		ORDER BY lvl DESC, id
		LIMIT 1`

	var id int64
	err := s.pool.QueryRow(ctx, q, lng, lat).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("unable to query containing geo: %w", err)
	}
	return id, nil
}
