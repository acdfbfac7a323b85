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

// Package mapping persists reconciled external-id to canonical-id mappings.
package mapping

import "github.com/estato/geomatch/internal/match"

// EntityType classifies what an id mapping points at.
type EntityType string

const (
	EntityGeo     EntityType = "geo"
	EntityStreet  EntityType = "street"
	EntityComplex EntityType = "complex"
	EntityTopzone EntityType = "topzone"
)

// IDMapping links one external id to one canonical entity. Unique per
// (Source, EntityType, SourceID); many source ids may map to one local id.
type IDMapping struct {
	Source      string
	EntityType  EntityType
	SourceID    int64
	LocalID     int64
	Confidence  float64
	MatchMethod match.Method
}

// Chunks splits rows into consecutive slices of at most size elements and is
// exposed so the apply-step chunking is testable without a database.
func Chunks(rows []IDMapping, size int) [][]IDMapping {
	if size <= 0 || len(rows) == 0 {
		return nil
	}
	out := make([][]IDMapping, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}
