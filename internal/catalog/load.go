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
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadGeos reads the canonical geo catalog.
func LoadGeos(ctx context.Context, pool *pgxpool.Pool) ([]Geo, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, COALESCE(name_uk, ''), COALESCE(name_ru, ''),
		       type, COALESCE(parent_id, 0), lft, rgt, lvl
		FROM geos
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("unable to query geos: %w", err)
	}
	defer rows.Close()

	var geos []Geo
	for rows.Next() {
		var g Geo
		var typ pgtype.Text
		if err := rows.Scan(&g.ID, &g.NameUK, &g.NameRU, &typ, &g.ParentID, &g.Lft, &g.Rgt, &g.Lvl); err != nil {
			return nil, fmt.Errorf("unable to scan geo row: %w", err)
		}
		g.Type = GeoType(typ.String)
		geos = append(geos, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geo rows: %w", err)
	}
	return geos, nil
}

// LoadStreets reads the canonical street catalog.
func LoadStreets(ctx context.Context, pool *pgxpool.Pool) ([]Street, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, COALESCE(name_uk, ''), COALESCE(name_ru, ''), geo_id
		FROM streets
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("unable to query streets: %w", err)
	}
	defer rows.Close()

	var streets []Street
	for rows.Next() {
		var s Street
		if err := rows.Scan(&s.ID, &s.NameUK, &s.NameRU, &s.GeoID); err != nil {
			return nil, fmt.Errorf("unable to scan street row: %w", err)
		}
		streets = append(streets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("street rows: %w", err)
	}
	return streets, nil
}
