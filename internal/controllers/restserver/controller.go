// Package restserver exposes classification results over a read-only HTTP API.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tsandell/dislotrace/internal/cache"
	"github.com/tsandell/dislotrace/internal/log"
	"github.com/tsandell/dislotrace/pkg/config"
	"github.com/tsandell/dislotrace/pkg/responseformat"
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTServerData
	Server     *http.Server
	results    *cache.ResultCache
	formatter  *responseformat.Formatter
	logger     *zap.SugaredLogger
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTServerData, results *cache.ResultCache, logger *zap.SugaredLogger) (*Controller, error) {
	if rc.Port == 0 {
		return nil, fmt.Errorf("REST server controller must define a port")
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		results:    results,
		formatter:  responseformat.NewFormatter(),
		logger:     logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/totals/latest", ctrl.handleLatest).Methods(http.MethodGet)
	router.HandleFunc("/totals/frame/{index}", ctrl.handleFrame).Methods(http.MethodGet)
	router.HandleFunc("/health", ctrl.handleHealth).Methods(http.MethodGet)

	ctrl.Server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", rc.ListenAddr, rc.Port),
		Handler: router,
	}

	return ctrl, nil
}

// StartController starts serving the HTTP API
func (c *Controller) StartController() error {
	log.Infof("starting REST server on %s", c.Server.Addr)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			c.logger.Errorf("REST server shutdown error: %v", err)
		}
	}()

	return nil
}
