// Package app wires configuration, the classification pipeline, sinks,
// frame sources, and controllers together.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/tsandell/dislotrace/internal/cache"
	"github.com/tsandell/dislotrace/internal/classify"
	"github.com/tsandell/dislotrace/internal/log"
	"github.com/tsandell/dislotrace/internal/managers"
	"github.com/tsandell/dislotrace/internal/pipeline"
	"github.com/tsandell/dislotrace/pkg/config"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	classifier, err := classifierFromConfig(cfg.Classifier)
	if err != nil {
		return err
	}

	// Initialize the sink manager and its result distributor
	sinkManager, err := managers.NewSinkManager(ctx, &wg, cfg)
	if err != nil {
		return err
	}

	// Start the classification pipeline
	results := cache.New(0)
	pl := pipeline.New(classifier, sinkManager.ResultDistributor, results, a.logger)
	go pl.Run(ctx, &wg)

	// Initialize the frame source manager
	fsm, err := managers.NewFrameSourceManager(ctx, &wg, cfg, pl.Frames, a.logger)
	if err != nil {
		return err
	}
	if err := fsm.StartFrameSources(); err != nil {
		return err
	}

	// Initialize the controller manager
	cm, err := managers.NewControllerManager(ctx, &wg, cfg, results, a.logger)
	if err != nil {
		return err
	}
	if err := cm.StartControllers(); err != nil {
		return err
	}

	log.Infof("dislotrace started, run %s", pl.RunID())

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")
	return nil
}

func classifierFromConfig(c config.ClassifierData) (*classify.Classifier, error) {
	screw := c.ScrewMaxAngle
	edge := c.EdgeMinAngle
	if screw == 0 {
		screw = classify.DefaultScrewMaxAngle
	}
	if edge == 0 {
		edge = classify.DefaultEdgeMinAngle
	}
	return classify.New(screw, edge)
}
