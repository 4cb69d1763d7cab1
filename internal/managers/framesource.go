package managers

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tsandell/dislotrace/internal/framesource"
	"github.com/tsandell/dislotrace/internal/framesource/tcpingest"
	"github.com/tsandell/dislotrace/internal/types"
	"github.com/tsandell/dislotrace/pkg/config"
)

// FrameSourceManager holds the configured frame sources
type FrameSourceManager struct {
	ctx     context.Context
	wg      *sync.WaitGroup
	sources []framesource.FrameSource
	logger  *zap.SugaredLogger
}

// NewFrameSourceManager creates a FrameSourceManager populated with all
// configured frame sources, delivering frames to the given channel
func NewFrameSourceManager(ctx context.Context, wg *sync.WaitGroup, cfg *config.ConfigData, frames chan<- *types.Frame, logger *zap.SugaredLogger) (*FrameSourceManager, error) {
	m := &FrameSourceManager{
		ctx:    ctx,
		wg:     wg,
		logger: logger,
	}

	if cfg.Ingest.ListenAddr != "" {
		m.sources = append(m.sources, tcpingest.NewSource(ctx, wg, cfg.Ingest.ListenAddr, frames, logger))
	}

	if len(m.sources) == 0 {
		return nil, fmt.Errorf("no frame sources configured")
	}

	return m, nil
}

// StartFrameSources starts every configured frame source
func (m *FrameSourceManager) StartFrameSources() error {
	for _, src := range m.sources {
		m.logger.Infof("starting frame source %s", src.SourceName())
		if err := src.StartFrameSource(); err != nil {
			return fmt.Errorf("could not start frame source %s: %w", src.SourceName(), err)
		}
	}
	return nil
}
