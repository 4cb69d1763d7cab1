// Package sink defines interfaces for classification result sink backends.
package sink

import (
	"context"
	"sync"

	"github.com/tsandell/dislotrace/internal/types"
)

// SinkEngineInterface is an interface that provides a few standardized
// methods for various result sink backends
type SinkEngineInterface interface {
	StartSinkEngine(context.Context, *sync.WaitGroup) chan<- types.FrameResult
}
