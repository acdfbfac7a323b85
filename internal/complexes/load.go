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

package complexes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// geoJSONPolygon is the subset of a GeoJSON Polygon geometry we read back
// from PostGIS: rings of [lng, lat] positions.
type geoJSONPolygon struct {
	Coordinates [][][]float64 `json:"coordinates"`
}

// Load reads the named-development catalog. The boundary comes back as
// GeoJSON; only the outer ring is kept, since the holes of a development
// footprint never matter for containment at listing precision.
func Load(ctx context.Context, pool *pgxpool.Pool) ([]Development, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, COALESCE(name_uk, ''), COALESCE(name_ru, ''),
		       COALESCE(street_id, 0), geo_id,
		       ST_X(center), ST_Y(center), ST_AsGeoJSON(boundary)
		FROM complexes
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("unable to query complexes: %w", err)
	}
	defer rows.Close()

	var devs []Development
	for rows.Next() {
		var d Development
		var nameUK, nameRU string
		var cx, cy pgtype.Float8
		var boundary pgtype.Text
		if err := rows.Scan(&d.ID, &nameUK, &nameRU, &d.StreetID, &d.GeoID, &cx, &cy, &boundary); err != nil {
			return nil, fmt.Errorf("unable to scan complex row: %w", err)
		}
		if nameUK != "" {
			d.Names = append(d.Names, nameUK)
		}
		if nameRU != "" && nameRU != nameUK {
			d.Names = append(d.Names, nameRU)
		}
		if cx.Valid && cy.Valid {
			d.Center = &Point{Lng: cx.Float64, Lat: cy.Float64}
		}
		if boundary.Valid && boundary.String != "" {
			ring, err := outerRing(boundary.String)
			if err != nil {
				return nil, fmt.Errorf("complex %d boundary: %w", d.ID, err)
			}
			d.Polygon = ring
		}
		devs = append(devs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("complex rows: %w", err)
	}
	return devs, nil
}

func outerRing(geoJSON string) ([]Point, error) {
	var poly geoJSONPolygon
	if err := json.Unmarshal([]byte(geoJSON), &poly); err != nil {
		return nil, err
	}
	if len(poly.Coordinates) == 0 {
		return nil, nil
	}
	ring := make([]Point, 0, len(poly.Coordinates[0]))
	for _, pos := range poly.Coordinates[0] {
		if len(pos) < 2 {
			return nil, fmt.Errorf("malformed position in polygon")
		}
		ring = append(ring, Point{Lng: pos[0], Lat: pos[1]})
	}
	return ring, nil
}
