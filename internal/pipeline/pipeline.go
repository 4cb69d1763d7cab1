// Package pipeline runs the per-frame dislocation classification callback:
// each incoming frame is classified, the four scalar attributes are written
// to the frame's attribute store, and the result is published to the result
// cache and the configured sinks.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsandell/dislotrace/internal/attributes"
	"github.com/tsandell/dislotrace/internal/cache"
	"github.com/tsandell/dislotrace/internal/classify"
	"github.com/tsandell/dislotrace/internal/types"
)

// Pipeline consumes frames from Frames and publishes classification results.
// Totals are recomputed from scratch every frame; no state carries over.
type Pipeline struct {
	// Frames is where frame sources deliver frames for classification
	Frames chan *types.Frame

	classifier  *classify.Classifier
	distributor chan<- types.FrameResult
	results     *cache.ResultCache
	runID       string
	logger      *zap.SugaredLogger
}

// New creates a Pipeline publishing to the given result distributor and cache
func New(classifier *classify.Classifier, distributor chan<- types.FrameResult, results *cache.ResultCache, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		Frames:      make(chan *types.Frame, 20),
		classifier:  classifier,
		distributor: distributor,
		results:     results,
		runID:       uuid.NewString(),
		logger:      logger,
	}
}

// RunID identifies this daemon run on every published FrameResult.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run consumes frames until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case frame := <-p.Frames:
			p.evaluate(ctx, frame)
		case <-ctx.Done():
			p.logger.Info("cancellation request received. Stopping frame pipeline.")
			return
		}
	}
}

// EvaluateFrame is the per-frame callback: classify every segment in the
// frame and write the Screw, Edge, Mixed, and Total attributes into attrs.
// Classification is all-or-nothing; on error nothing is written to attrs
// and the frame is considered failed.
func (p *Pipeline) EvaluateFrame(frame *types.Frame, attrs attributes.Store) (types.FrameResult, error) {
	summary, err := p.classifier.ClassifyFrame(frame)
	if err != nil {
		return types.FrameResult{}, err
	}

	attrs.Set(attributes.AttrScrew, summary.Screw)
	attrs.Set(attributes.AttrEdge, summary.Edge)
	attrs.Set(attributes.AttrMixed, summary.Mixed)
	attrs.Set(attributes.AttrTotal, summary.Total())

	return types.FrameResult{
		Timestamp:    time.Now(),
		RunID:        p.runID,
		FrameIndex:   frame.Index,
		Screw:        summary.Screw,
		Edge:         summary.Edge,
		Mixed:        summary.Mixed,
		Total:        summary.Total(),
		SegmentCount: summary.SegmentCount,
		SpanCount:    summary.SpanCount,
		MeanAngle:    summary.MeanAngle,
		StdDevAngle:  summary.StdDevAngle,
	}, nil
}

func (p *Pipeline) evaluate(ctx context.Context, frame *types.Frame) {
	attrs := attributes.NewFrameAttributes()
	result, err := p.EvaluateFrame(frame, attrs)
	if err != nil {
		p.logger.Errorf("frame %d classification failed: %v", frame.Index, err)
		return
	}

	p.results.Put(result)

	select {
	case p.distributor <- result:
	case <-ctx.Done():
		return
	}

	p.logger.Debugw("frame classified",
		"frame", result.FrameIndex,
		"segments", result.SegmentCount,
		"screw", result.Screw,
		"edge", result.Edge,
		"mixed", result.Mixed,
		"total", result.Total)
}
