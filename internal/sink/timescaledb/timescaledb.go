// Package timescaledb persists per-frame classification totals to
// TimescaleDB for long simulation campaigns.
package timescaledb

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/tsandell/dislotrace/internal/database"
	"github.com/tsandell/dislotrace/internal/log"
	"github.com/tsandell/dislotrace/internal/types"
)

const createExtensionSQL = `CREATE EXTENSION IF NOT EXISTS timescaledb`

const createTableSQL = `
CREATE TABLE IF NOT EXISTS frame_results (
	time timestamptz NOT NULL,
	runid text NOT NULL,
	frameindex integer NOT NULL,
	screw double precision NOT NULL,
	edge double precision NOT NULL,
	mixed double precision NOT NULL,
	total double precision NOT NULL,
	segmentcount integer NOT NULL,
	spancount integer NOT NULL,
	meanangle double precision NOT NULL,
	stddevangle double precision NOT NULL
)`

const createHypertableSQL = `SELECT create_hypertable('frame_results', 'time', if_not_exists => TRUE)`

// Storage holds the configuration for a TimescaleDB sink backend
type Storage struct {
	TimescaleDBConn *gorm.DB
}

// New sets up a new TimescaleDB sink backend
func New(ctx context.Context, connectionString string) (*Storage, error) {
	var err error
	t := Storage{}

	log.Info("connecting to TimescaleDB...")
	t.TimescaleDBConn, err = database.CreateConnection(connectionString)
	if err != nil {
		log.Warn("warning: unable to create a TimescaleDB connection:", err)
		return &Storage{}, err
	}

	log.Info("creating TimescaleDB extension...")
	if err := t.TimescaleDBConn.WithContext(ctx).Exec(createExtensionSQL).Error; err != nil {
		log.Warn("warning: could not create TimescaleDB extension")
		return &Storage{}, err
	}

	log.Info("creating results table...")
	if err := t.TimescaleDBConn.WithContext(ctx).Exec(createTableSQL).Error; err != nil {
		log.Warn("warning: could not create table in database")
		return &Storage{}, err
	}

	log.Info("creating hypertable...")
	if err := t.TimescaleDBConn.WithContext(ctx).Exec(createHypertableSQL).Error; err != nil {
		log.Warn("warning: could not create hypertable")
		return &Storage{}, err
	}

	return &t, nil
}

// StartSinkEngine creates a goroutine loop to receive results and send
// them off to TimescaleDB
func (t *Storage) StartSinkEngine(ctx context.Context, wg *sync.WaitGroup) chan<- types.FrameResult {
	log.Info("starting TimescaleDB sink...")
	resultChan := make(chan types.FrameResult, 10)
	go t.processResults(ctx, wg, resultChan)
	return resultChan
}

func (t *Storage) processResults(ctx context.Context, wg *sync.WaitGroup, rchan <-chan types.FrameResult) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case r := <-rchan:
			if err := t.StoreResult(r); err != nil {
				log.Errorf("could not store frame %d result: %v", r.FrameIndex, err)
			}
		case <-ctx.Done():
			log.Info("cancellation request received. Cancelling TimescaleDB sink.")
			return
		}
	}
}

// StoreResult stores one frame's totals in TimescaleDB
func (t *Storage) StoreResult(r types.FrameResult) error {
	return t.TimescaleDBConn.Create(&r).Error
}
