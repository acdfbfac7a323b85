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

package mapping

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// DefaultChunkSize bounds one insert statement; one failing chunk can never
// touch rows committed by earlier chunks.
const DefaultChunkSize = 500

// ChunkError reports the row range of a failed apply chunk so the run can be
// retried for exactly that range.
type ChunkError struct {
	Start int
	End   int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("apply chunk rows %d..%d failed: %v", e.Start, e.End, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// Store reads and writes id mappings.
type Store struct {
	pool      *pgxpool.Pool
	chunkSize int
	log       zerolog.Logger
}

// NewStore builds a store with the default chunk size.
func NewStore(pool *pgxpool.Pool, log zerolog.Logger) *Store {
	return &Store{pool: pool, chunkSize: DefaultChunkSize, log: log}
}

// WithChunkSize overrides the apply chunk size; values above the default are
// clamped back to it.
func (s *Store) WithChunkSize(size int) *Store {
	if size > 0 && size <= DefaultChunkSize {
		s.chunkSize = size
	}
	return s
}

// Mapping loads the existing sourceID -> localID map for one source and
// entity type. The batch reconciler uses this for geo translation.
func (s *Store) Mapping(ctx context.Context, source string, et EntityType) (map[int64]int64, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT source_id, local_id
		FROM id_mappings
		WHERE source = $1 AND entity_type = $2`, source, string(et))
	if err != nil {
		return nil, fmt.Errorf("unable to query id mappings: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]int64)
	for rows.Next() {
		var sourceID, localID int64
		if err := rows.Scan(&sourceID, &localID); err != nil {
			return nil, fmt.Errorf("unable to scan id mapping row: %w", err)
		}
		out[sourceID] = localID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("id mapping rows: %w", err)
	}
	return out, nil
}

// Replace wholesale-replaces the mappings of one (source, entityType):
// delete everything, then bulk-insert the new set in bounded chunks, each in
// its own transaction. A failing chunk aborts the run with its row range;
// previously committed chunks stay in place and the job is re-runnable from
// scratch.
func (s *Store) Replace(ctx context.Context, source string, et EntityType, rows []IDMapping) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM id_mappings
		WHERE source = $1 AND entity_type = $2`, source, string(et))
	if err != nil {
		return fmt.Errorf("unable to delete old mappings for %s/%s: %w", source, et, err)
	}
	s.log.Info().
		Str("source", source).
		Str("entity_type", string(et)).
		Int64("deleted", tag.RowsAffected()).
		Int("pending", len(rows)).
		Msg("replacing id mappings")

	for i, chunk := range Chunks(rows, s.chunkSize) {
		start := i * s.chunkSize
		if err := s.insertChunk(ctx, chunk); err != nil {
			return &ChunkError{Start: start, End: start + len(chunk) - 1, Err: err}
		}
	}
	return nil
}

func (s *Store) insertChunk(ctx context.Context, chunk []IDMapping) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, m := range chunk {
		batch.Queue(`
			INSERT INTO id_mappings (source, entity_type, source_id, local_id, confidence, match_method)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			m.Source, string(m.EntityType), m.SourceID, m.LocalID, m.Confidence, string(m.MatchMethod))
	}
	br := tx.SendBatch(ctx, batch)
	for range chunk {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	if err := br.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
