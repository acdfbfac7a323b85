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

package reconcile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadRecords reads the staged street references of one external source.
// usage_count counts how many live listings reference the street; it drives
// the manual-review ordering, never the matching itself.
func LoadRecords(ctx context.Context, pool *pgxpool.Pool, source string) ([]Record, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, COALESCE(name_uk, ''), COALESCE(name_ru, ''), geo_id, usage_count
		FROM external_streets
		WHERE source = $1
		ORDER BY id`, source)
	if err != nil {
		return nil, fmt.Errorf("unable to query external streets: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var nameUK, nameRU string
		if err := rows.Scan(&rec.ID, &nameUK, &nameRU, &rec.SourceGeoID, &rec.UsageCount); err != nil {
			return nil, fmt.Errorf("unable to scan external street row: %w", err)
		}
		if nameUK != "" {
			rec.Names = append(rec.Names, nameUK)
		}
		if nameRU != "" {
			rec.Names = append(rec.Names, nameRU)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("external street rows: %w", err)
	}
	return records, nil
}
