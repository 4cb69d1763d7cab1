// Package sqlite persists per-frame classification totals to a local SQLite
// database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/tsandell/dislotrace/internal/log"
	"github.com/tsandell/dislotrace/internal/types"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS frame_results (
	time TIMESTAMP NOT NULL,
	runid TEXT NOT NULL,
	frameindex INTEGER NOT NULL,
	screw REAL NOT NULL,
	edge REAL NOT NULL,
	mixed REAL NOT NULL,
	total REAL NOT NULL,
	segmentcount INTEGER NOT NULL,
	spancount INTEGER NOT NULL,
	meanangle REAL NOT NULL,
	stddevangle REAL NOT NULL
)`

const insertResultSQL = `
INSERT INTO frame_results
	(time, runid, frameindex, screw, edge, mixed, total, segmentcount, spancount, meanangle, stddevangle)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Storage holds the connection for a SQLite result sink
type Storage struct {
	db *sql.DB
}

// New sets up a new SQLite sink backend, creating the results table if needed
func New(ctx context.Context, path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open SQLite database %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("could not ping SQLite database %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("could not create frame_results table: %w", err)
	}

	return &Storage{db: db}, nil
}

// StartSinkEngine creates a goroutine loop to receive results and persist them
func (s *Storage) StartSinkEngine(ctx context.Context, wg *sync.WaitGroup) chan<- types.FrameResult {
	log.Info("starting SQLite sink...")
	resultChan := make(chan types.FrameResult, 10)
	go s.processResults(ctx, wg, resultChan)
	return resultChan
}

func (s *Storage) processResults(ctx context.Context, wg *sync.WaitGroup, rchan <-chan types.FrameResult) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case r := <-rchan:
			if err := s.StoreResult(ctx, r); err != nil {
				log.Errorf("could not store frame %d result: %v", r.FrameIndex, err)
			}
		case <-ctx.Done():
			log.Info("cancellation request received. Cancelling SQLite sink.")
			s.db.Close()
			return
		}
	}
}

// StoreResult stores one frame's totals in SQLite
func (s *Storage) StoreResult(ctx context.Context, r types.FrameResult) error {
	_, err := s.db.ExecContext(ctx, insertResultSQL,
		r.Timestamp, r.RunID, r.FrameIndex,
		r.Screw, r.Edge, r.Mixed, r.Total,
		r.SegmentCount, r.SpanCount, r.MeanAngle, r.StdDevAngle)
	return err
}
