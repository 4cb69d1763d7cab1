// Package console emits the human-readable per-frame classification summary
// block to a caller-supplied writer.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tsandell/dislotrace/internal/log"
	"github.com/tsandell/dislotrace/internal/types"
)

const separator = "--------------------------------------------------"

// Sink writes a four-line totals block, bracketed by separator lines, for
// every classified frame. Purely observational; nothing consumes the output.
type Sink struct {
	w io.Writer
}

// New creates a console sink writing to w, or to stdout when w is nil.
func New(w io.Writer) *Sink {
	if w == nil {
		w = os.Stdout
	}
	return &Sink{w: w}
}

// StartSinkEngine creates a goroutine loop to receive results and print them
func (s *Sink) StartSinkEngine(ctx context.Context, wg *sync.WaitGroup) chan<- types.FrameResult {
	log.Info("starting console sink...")
	resultChan := make(chan types.FrameResult, 10)
	go s.processResults(ctx, wg, resultChan)
	return resultChan
}

func (s *Sink) processResults(ctx context.Context, wg *sync.WaitGroup, rchan <-chan types.FrameResult) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case r := <-rchan:
			s.WriteSummary(r)
		case <-ctx.Done():
			log.Info("cancellation request received. Cancelling console sink.")
			return
		}
	}
}

// WriteSummary prints the totals block for one frame.
func (s *Sink) WriteSummary(r types.FrameResult) {
	fmt.Fprintln(s.w, separator)
	fmt.Fprintf(s.w, "Screw dislocation length: %g\n", r.Screw)
	fmt.Fprintf(s.w, "Edge dislocation length: %g\n", r.Edge)
	fmt.Fprintf(s.w, "Mixed dislocation length: %g\n", r.Mixed)
	fmt.Fprintf(s.w, "Total dislocation length: %g\n", r.Total)
	fmt.Fprintln(s.w, separator)
}
