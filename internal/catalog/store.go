package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/futures-data/internal/metrics"
)

// DefaultBatchSize is the number of rows queued per pgx.Batch.
const DefaultBatchSize = 500

// Schema creates the catalog table.
const Schema = `
CREATE TABLE IF NOT EXISTS contract_files (
	source      TEXT        NOT NULL,
	symbol      TEXT        NOT NULL,
	month       TEXT        NOT NULL,
	year        INTEGER     NOT NULL,
	path        TEXT        NOT NULL,
	size_bytes  BIGINT      NOT NULL,
	modified_at TIMESTAMPTZ NOT NULL,
	run_id      UUID        NOT NULL,
	indexed_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (source, symbol, month, year)
)`

const upsertSQL = `
	INSERT INTO contract_files (source, symbol, month, year, path, size_bytes, modified_at, run_id, indexed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	ON CONFLICT (source, symbol, month, year) DO UPDATE SET
		path        = EXCLUDED.path,
		size_bytes  = EXCLUDED.size_bytes,
		modified_at = EXCLUDED.modified_at,
		run_id      = EXCLUDED.run_id,
		indexed_at  = EXCLUDED.indexed_at
`

const pruneSQL = `DELETE FROM contract_files WHERE run_id <> $1`

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// StoreMetrics tracks store operations.
type StoreMetrics struct {
	Runs    int64
	Upserts int64
	Pruned  int64
	Errors  int64
	Batches int64
}

// Store writes scan results to the contract_files table.
type Store struct {
	db        DB
	batchSize int
	logger    *slog.Logger
	prom      *metrics.Catalog

	mu      sync.Mutex
	metrics StoreMetrics
}

// NewStore creates a Store. prom may be nil.
func NewStore(db DB, prom *metrics.Catalog, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:        db,
		batchSize: DefaultBatchSize,
		logger:    logger,
		prom:      prom,
	}
}

// EnsureSchema creates the catalog table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create contract_files: %w", err)
	}
	return nil
}

// Write upserts entries tagged with runID and returns the rows affected.
func (s *Store) Write(ctx context.Context, runID uuid.UUID, entries []Entry) (int, error) {
	start := time.Now()
	written := 0

	for lo := 0; lo < len(entries); lo += s.batchSize {
		hi := min(lo+s.batchSize, len(entries))
		n, err := s.batchUpsert(ctx, runID, entries[lo:hi])
		written += n
		if err != nil {
			s.record(func(m *StoreMetrics) {
				m.Errors++
				m.Upserts += int64(n)
			})
			s.prom.ObserveWritten(n)
			return written, fmt.Errorf("upsert contract files: %w", err)
		}
		s.record(func(m *StoreMetrics) {
			m.Upserts += int64(n)
			m.Batches++
		})
	}

	s.record(func(m *StoreMetrics) { m.Runs++ })
	s.prom.ObserveWritten(written)

	s.logger.Info("catalog written",
		"run_id", runID,
		"rows", written,
		"duration", time.Since(start),
	)
	return written, nil
}

// Prune deletes rows not touched by runID, i.e. files that disappeared
// since the previous index run.
func (s *Store) Prune(ctx context.Context, runID uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx, pruneSQL, runID.String())
	if err != nil {
		s.record(func(m *StoreMetrics) { m.Errors++ })
		return 0, fmt.Errorf("prune contract files: %w", err)
	}
	n := tag.RowsAffected()
	s.record(func(m *StoreMetrics) { m.Pruned += n })
	if n > 0 {
		s.logger.Info("catalog pruned", "run_id", runID, "rows", n)
	}
	return n, nil
}

// Stats returns current metrics.
func (s *Store) Stats() StoreMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

func (s *Store) record(f func(*StoreMetrics)) {
	s.mu.Lock()
	f(&s.metrics)
	s.mu.Unlock()
}

// batchUpsert queues one upsert per entry in a single pgx.Batch.
func (s *Store) batchUpsert(ctx context.Context, runID uuid.UUID, rows []Entry) (int, error) {
	batch := &pgx.Batch{}
	for _, e := range rows {
		r := e.Request
		batch.Queue(upsertSQL,
			r.Source().String(), r.Symbol().String(), r.Month().String(), r.Year(),
			e.Path, e.Size, e.ModTime, runID.String(),
		)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return written, err
		}
		written += int(ct.RowsAffected())
	}
	return written, nil
}
