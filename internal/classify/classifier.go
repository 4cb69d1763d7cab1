// Package classify implements dislocation character classification: each
// span of a dislocation line is bucketed as screw, edge, or mixed by the
// angle between its local line direction and the segment's Burgers vector,
// and span lengths are accumulated per bucket.
package classify

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/tsandell/dislotrace/internal/types"
	"github.com/tsandell/dislotrace/pkg/geom"
)

// Character identifies the dislocation character of a single span.
type Character string

const (
	CharacterScrew Character = "screw"
	CharacterEdge  Character = "edge"
	CharacterMixed Character = "mixed"
)

// Conventional character thresholds, in degrees.
const (
	DefaultScrewMaxAngle = 30.0
	DefaultEdgeMinAngle  = 60.0
)

// Totals accumulates dislocation line length per character bucket.
type Totals struct {
	Screw float64
	Edge  float64
	Mixed float64
}

// Total returns the summed line length across all three buckets.
func (t Totals) Total() float64 {
	return t.Screw + t.Edge + t.Mixed
}

// Add accumulates o into t.
func (t *Totals) Add(o Totals) {
	t.Screw += o.Screw
	t.Edge += o.Edge
	t.Mixed += o.Mixed
}

// FrameSummary is the aggregated result of classifying every segment in a
// frame. MeanAngle and StdDevAngle are the length-weighted mean and standard
// deviation of span angles in degrees, zero when the frame has fewer than
// one or two contributing spans respectively.
type FrameSummary struct {
	Totals
	SegmentCount int
	SpanCount    int
	MeanAngle    float64
	StdDevAngle  float64
}

// Classifier buckets dislocation spans by the angle between the local line
// direction and the segment's Burgers vector. Spans at exactly the screw
// threshold are screw and spans at exactly the edge threshold are edge; only
// the open band between them is mixed.
type Classifier struct {
	screwMax float64
	edgeMin  float64
}

// New creates a Classifier with the given thresholds in degrees. The screw
// threshold must lie strictly between 0 and the edge threshold, which must
// lie strictly below 90.
func New(screwMaxDeg, edgeMinDeg float64) (*Classifier, error) {
	if screwMaxDeg <= 0 || edgeMinDeg >= 90 || screwMaxDeg >= edgeMinDeg {
		return nil, fmt.Errorf("classify: invalid thresholds: screw max %v°, edge min %v°", screwMaxDeg, edgeMinDeg)
	}
	return &Classifier{screwMax: screwMaxDeg, edgeMin: edgeMinDeg}, nil
}

// NewDefault returns a Classifier with the conventional 30°/60° bands.
func NewDefault() *Classifier {
	c, _ := New(DefaultScrewMaxAngle, DefaultEdgeMinAngle)
	return c
}

// Character returns the bucket for a span whose line direction sits at
// thetaDeg degrees to the Burgers vector.
func (c *Classifier) Character(thetaDeg float64) Character {
	switch {
	case thetaDeg <= c.screwMax:
		return CharacterScrew
	case thetaDeg >= c.edgeMin:
		return CharacterEdge
	default:
		return CharacterMixed
	}
}

// walkSegment visits every consecutive point pair of seg, calling fn with
// the span's angle (degrees) and length. Spans whose endpoints coincide have
// no direction and could contribute no length, so they are skipped.
func (c *Classifier) walkSegment(seg types.Segment, fn func(thetaDeg, length float64)) error {
	if seg.Burgers.IsZero() {
		return fmt.Errorf("classify: Burgers vector: %w", geom.ErrZeroVector)
	}
	for i := 0; i+1 < len(seg.Points); i++ {
		d := seg.Points[i+1].Sub(seg.Points[i])
		if d.IsZero() {
			continue
		}
		theta, err := geom.LineAngle(d, seg.Burgers)
		if err != nil {
			return fmt.Errorf("classify: span %d: %w", i, err)
		}
		fn(theta, d.Norm())
	}
	return nil
}

func (c *Classifier) accumulate(t *Totals, thetaDeg, length float64) {
	switch c.Character(thetaDeg) {
	case CharacterScrew:
		t.Screw += length
	case CharacterEdge:
		t.Edge += length
	default:
		t.Mixed += length
	}
}

// ClassifySegment classifies every span of one segment and returns the
// accumulated per-bucket lengths.
func (c *Classifier) ClassifySegment(seg types.Segment) (Totals, error) {
	var t Totals
	err := c.walkSegment(seg, func(theta, length float64) {
		c.accumulate(&t, theta, length)
	})
	if err != nil {
		return Totals{}, err
	}
	return t, nil
}

// ClassifyFrame classifies every segment in the frame and aggregates the
// per-segment results into frame totals. Classification is all-or-nothing: a
// degenerate Burgers vector on any segment fails the whole frame and no
// partial totals are returned. An empty frame yields all-zero totals.
func (c *Classifier) ClassifyFrame(frame *types.Frame) (FrameSummary, error) {
	var sum FrameSummary
	var angles, weights []float64

	for si, seg := range frame.Segments {
		err := c.walkSegment(seg, func(theta, length float64) {
			c.accumulate(&sum.Totals, theta, length)
			angles = append(angles, theta)
			weights = append(weights, length)
			sum.SpanCount++
		})
		if err != nil {
			return FrameSummary{}, fmt.Errorf("segment %d: %w", si, err)
		}
		sum.SegmentCount++
	}

	if len(angles) >= 1 {
		sum.MeanAngle = stat.Mean(angles, weights)
	}
	if len(angles) >= 2 {
		sum.StdDevAngle = stat.StdDev(angles, weights)
	}
	return sum, nil
}
