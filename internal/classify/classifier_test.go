package classify

import (
	"math"
	"testing"

	"github.com/tsandell/dislotrace/internal/types"
	"github.com/tsandell/dislotrace/pkg/geom"
)

func TestCharacterThresholds(t *testing.T) {
	c := NewDefault()

	tests := []struct {
		name     string
		thetaDeg float64
		expected Character
	}{
		{"parallel", 0, CharacterScrew},
		{"inside screw band", 15, CharacterScrew},
		{"screw boundary belongs to screw", 30.0, CharacterScrew},
		{"just past screw boundary", 30.0001, CharacterMixed},
		{"middle of mixed band", 45, CharacterMixed},
		{"just below edge boundary", 59.999, CharacterMixed},
		{"edge boundary belongs to edge", 60.0, CharacterEdge},
		{"inside edge band", 75, CharacterEdge},
		{"perpendicular", 90, CharacterEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Character(tt.thetaDeg); got != tt.expected {
				t.Errorf("Character(%v) = %v, want %v", tt.thetaDeg, got, tt.expected)
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		screwMax float64
		edgeMin  float64
		wantErr  bool
	}{
		{"defaults", 30, 60, false},
		{"narrow bands", 10, 80, false},
		{"zero screw threshold", 0, 60, true},
		{"edge at 90", 30, 90, true},
		{"inverted", 60, 30, true},
		{"equal", 45, 45, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.screwMax, tt.edgeMin)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%v, %v) error = %v, wantErr %v", tt.screwMax, tt.edgeMin, err, tt.wantErr)
			}
		})
	}
}

func TestClassifySegment(t *testing.T) {
	c := NewDefault()

	tests := []struct {
		name     string
		segment  types.Segment
		expected Totals
		epsilon  float64
	}{
		{
			name: "unit span parallel to Burgers is pure screw",
			segment: types.Segment{
				Points:  []geom.Vec3{{0, 0, 0}, {1, 0, 0}},
				Burgers: geom.Vec3{1, 0, 0},
			},
			expected: Totals{Screw: 1},
			epsilon:  1e-12,
		},
		{
			name: "unit span perpendicular to Burgers is pure edge",
			segment: types.Segment{
				Points:  []geom.Vec3{{0, 0, 0}, {1, 0, 0}},
				Burgers: geom.Vec3{0, 1, 0},
			},
			expected: Totals{Edge: 1},
			epsilon:  1e-12,
		},
		{
			name: "45 degree span is mixed",
			segment: types.Segment{
				Points:  []geom.Vec3{{0, 0, 0}, {1, 1, 0}},
				Burgers: geom.Vec3{1, 0, 0},
			},
			expected: Totals{Mixed: math.Sqrt2},
			epsilon:  1e-12,
		},
		{
			name: "polyline splits across buckets per span",
			segment: types.Segment{
				// first span along x (screw), second along y (edge)
				Points:  []geom.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 3, 0}},
				Burgers: geom.Vec3{1, 0, 0},
			},
			expected: Totals{Screw: 2, Edge: 3},
			epsilon:  1e-12,
		},
		{
			name: "zero-length span is skipped",
			segment: types.Segment{
				Points:  []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 0}, {2, 0, 0}},
				Burgers: geom.Vec3{1, 0, 0},
			},
			expected: Totals{Screw: 2},
			epsilon:  1e-12,
		},
		{
			name: "single point has no spans",
			segment: types.Segment{
				Points:  []geom.Vec3{{5, 5, 5}},
				Burgers: geom.Vec3{1, 0, 0},
			},
			expected: Totals{},
			epsilon:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ClassifySegment(tt.segment)
			if err != nil {
				t.Fatalf("ClassifySegment returned error: %v", err)
			}
			if math.Abs(got.Screw-tt.expected.Screw) > tt.epsilon ||
				math.Abs(got.Edge-tt.expected.Edge) > tt.epsilon ||
				math.Abs(got.Mixed-tt.expected.Mixed) > tt.epsilon {
				t.Errorf("ClassifySegment = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestClassifySegmentDirectionAgnostic(t *testing.T) {
	c := NewDefault()
	base := types.Segment{
		Points:  []geom.Vec3{{0, 0, 0}, {1, 0.3, 0}, {2, 0.1, 1}},
		Burgers: geom.Vec3{0.5, 0.5, 0},
	}

	reversed := types.Segment{
		Points:  []geom.Vec3{{2, 0.1, 1}, {1, 0.3, 0}, {0, 0, 0}},
		Burgers: base.Burgers,
	}
	negated := types.Segment{
		Points:  base.Points,
		Burgers: geom.Vec3{-0.5, -0.5, 0},
	}

	want, err := c.ClassifySegment(base)
	if err != nil {
		t.Fatalf("ClassifySegment returned error: %v", err)
	}

	for name, seg := range map[string]types.Segment{"reversed points": reversed, "negated Burgers": negated} {
		got, err := c.ClassifySegment(seg)
		if err != nil {
			t.Fatalf("%s: ClassifySegment returned error: %v", name, err)
		}
		if got != want {
			t.Errorf("%s: ClassifySegment = %+v, want %+v", name, got, want)
		}
	}
}

func TestClassifySegmentDegenerateBurgers(t *testing.T) {
	c := NewDefault()
	seg := types.Segment{
		Points:  []geom.Vec3{{0, 0, 0}, {1, 0, 0}},
		Burgers: geom.Vec3{},
	}
	if _, err := c.ClassifySegment(seg); err == nil {
		t.Fatal("expected error for zero Burgers vector")
	}
}

func TestClassifyFrame(t *testing.T) {
	c := NewDefault()

	frame := &types.Frame{
		Index: 7,
		Segments: []types.Segment{
			{
				Points:  []geom.Vec3{{0, 0, 0}, {1, 0, 0}},
				Burgers: geom.Vec3{1, 0, 0},
			},
			{
				Points:  []geom.Vec3{{0, 0, 0}, {0, 2, 0}},
				Burgers: geom.Vec3{1, 0, 0},
			},
		},
	}

	sum, err := c.ClassifyFrame(frame)
	if err != nil {
		t.Fatalf("ClassifyFrame returned error: %v", err)
	}

	if math.Abs(sum.Screw-1) > 1e-12 || math.Abs(sum.Edge-2) > 1e-12 || sum.Mixed != 0 {
		t.Errorf("totals = %+v, want screw=1 edge=2 mixed=0", sum.Totals)
	}
	if math.Abs(sum.Total()-3) > 1e-12 {
		t.Errorf("Total() = %v, want 3", sum.Total())
	}
	if sum.SegmentCount != 2 || sum.SpanCount != 2 {
		t.Errorf("counts = %d segments %d spans, want 2 and 2", sum.SegmentCount, sum.SpanCount)
	}

	// Length-weighted mean of 0° (weight 1) and 90° (weight 2)
	if math.Abs(sum.MeanAngle-60) > 1e-9 {
		t.Errorf("MeanAngle = %v, want 60", sum.MeanAngle)
	}
	if sum.StdDevAngle <= 0 {
		t.Errorf("StdDevAngle = %v, want > 0", sum.StdDevAngle)
	}
}

func TestClassifyFrameEmpty(t *testing.T) {
	c := NewDefault()
	sum, err := c.ClassifyFrame(&types.Frame{Index: 0})
	if err != nil {
		t.Fatalf("ClassifyFrame returned error: %v", err)
	}
	if sum.Screw != 0 || sum.Edge != 0 || sum.Mixed != 0 || sum.Total() != 0 {
		t.Errorf("empty frame totals = %+v, want all zero", sum.Totals)
	}
	if sum.MeanAngle != 0 || sum.StdDevAngle != 0 {
		t.Errorf("empty frame stats = %v/%v, want zero", sum.MeanAngle, sum.StdDevAngle)
	}
}

func TestClassifyFrameFailsWhole(t *testing.T) {
	c := NewDefault()
	frame := &types.Frame{
		Segments: []types.Segment{
			{
				Points:  []geom.Vec3{{0, 0, 0}, {1, 0, 0}},
				Burgers: geom.Vec3{1, 0, 0},
			},
			{
				Points:  []geom.Vec3{{0, 0, 0}, {1, 0, 0}},
				Burgers: geom.Vec3{},
			},
		},
	}
	if _, err := c.ClassifyFrame(frame); err == nil {
		t.Fatal("expected whole-frame failure for degenerate Burgers vector")
	}
}

func TestSumInvariant(t *testing.T) {
	c := NewDefault()

	// A jagged line touching all three buckets
	seg := types.Segment{
		Points: []geom.Vec3{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {2, 2, 0}, {2.5, 2, 1}, {3, 3, 3},
		},
		Burgers: geom.Vec3{1, 0, 0},
	}

	totals, err := c.ClassifySegment(seg)
	if err != nil {
		t.Fatalf("ClassifySegment returned error: %v", err)
	}

	var lengthSum float64
	for i := 0; i+1 < len(seg.Points); i++ {
		lengthSum += seg.Points[i+1].Sub(seg.Points[i]).Norm()
	}

	if math.Abs(totals.Total()-lengthSum) > 1e-12 {
		t.Errorf("Total() = %v, want total polyline length %v", totals.Total(), lengthSum)
	}
	if totals.Screw == 0 || totals.Edge == 0 || totals.Mixed == 0 {
		t.Errorf("expected all three buckets populated, got %+v", totals)
	}
}
