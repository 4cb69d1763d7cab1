// Package managers wires configured sinks, frame sources, and controllers
// into the running application.
package managers

import (
	"context"
	"fmt"
	"sync"

	"github.com/tsandell/dislotrace/internal/log"
	"github.com/tsandell/dislotrace/internal/sink"
	"github.com/tsandell/dislotrace/internal/sink/console"
	sqlitesink "github.com/tsandell/dislotrace/internal/sink/sqlite"
	"github.com/tsandell/dislotrace/internal/sink/timescaledb"
	"github.com/tsandell/dislotrace/internal/types"
	"github.com/tsandell/dislotrace/pkg/config"
)

// SinkManager holds our active result sink backends
type SinkManager struct {
	Engines           []SinkEngine
	ResultDistributor chan types.FrameResult
}

// SinkEngine holds a backend sink engine's interface as well as a channel
// for passing results to the engine
type SinkEngine struct {
	Engine sink.SinkEngineInterface
	C      chan<- types.FrameResult
}

// NewSinkManager creates a SinkManager populated with all configured sinks
func NewSinkManager(ctx context.Context, wg *sync.WaitGroup, cfg *config.ConfigData) (*SinkManager, error) {
	s := SinkManager{}

	// Channel for passing results from the pipeline to the distributor
	s.ResultDistributor = make(chan types.FrameResult, 20)

	// Start our result distributor to fan results out to sink backends
	go s.startResultDistributor(ctx, wg)

	if cfg.Sinks.Console != nil && cfg.Sinks.Console.Enabled {
		s.registerEngine(ctx, wg, console.New(nil))
	}

	if cfg.Sinks.SQLite != nil && cfg.Sinks.SQLite.Path != "" {
		eng, err := sqlitesink.New(ctx, cfg.Sinks.SQLite.Path)
		if err != nil {
			return &s, fmt.Errorf("could not add SQLite sink: %w", err)
		}
		s.registerEngine(ctx, wg, eng)
	}

	if cfg.Sinks.TimescaleDB != nil && cfg.Sinks.TimescaleDB.ConnectionString != "" {
		eng, err := timescaledb.New(ctx, cfg.Sinks.TimescaleDB.ConnectionString)
		if err != nil {
			return &s, fmt.Errorf("could not add TimescaleDB sink: %w", err)
		}
		s.registerEngine(ctx, wg, eng)
	}

	return &s, nil
}

func (s *SinkManager) registerEngine(ctx context.Context, wg *sync.WaitGroup, e sink.SinkEngineInterface) {
	s.Engines = append(s.Engines, SinkEngine{
		Engine: e,
		C:      e.StartSinkEngine(ctx, wg),
	})
}

// startResultDistributor receives results from the pipeline and fans them
// out to all configured sink engines
func (s *SinkManager) startResultDistributor(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case r := <-s.ResultDistributor:
			for _, e := range s.Engines {
				e.C <- r
			}
		case <-ctx.Done():
			log.Info("cancellation request received. Cancelling result distributor.")
			return
		}
	}
}
