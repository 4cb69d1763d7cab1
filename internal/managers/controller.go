package managers

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tsandell/dislotrace/internal/cache"
	"github.com/tsandell/dislotrace/internal/controllers/restserver"
	"github.com/tsandell/dislotrace/pkg/config"
)

// ControllerManager interface for the controller manager
type ControllerManager interface {
	StartControllers() error
}

// Controller is an interface that provides standard methods for various
// controller backends
type Controller interface {
	StartController() error
}

type controllerManager struct {
	ctx         context.Context
	wg          *sync.WaitGroup
	logger      *zap.SugaredLogger
	controllers []Controller
}

// NewControllerManager creates a new controller manager
func NewControllerManager(ctx context.Context, wg *sync.WaitGroup, cfg *config.ConfigData, results *cache.ResultCache, logger *zap.SugaredLogger) (ControllerManager, error) {
	cm := &controllerManager{
		ctx:         ctx,
		wg:          wg,
		logger:      logger,
		controllers: make([]Controller, 0),
	}

	for _, con := range cfg.Controllers {
		switch {
		case con.RESTServer != nil:
			controller, err := restserver.NewController(ctx, wg, *con.RESTServer, results, logger)
			if err != nil {
				return nil, fmt.Errorf("error creating REST server controller: %w", err)
			}
			cm.controllers = append(cm.controllers, controller)
		default:
			return nil, fmt.Errorf("unknown controller type: %s", con.Type)
		}
	}

	return cm, nil
}

func (c *controllerManager) StartControllers() error {
	c.logger.Info("Starting controller manager...")

	for _, controller := range c.controllers {
		if err := controller.StartController(); err != nil {
			return err
		}
	}
	return nil
}
