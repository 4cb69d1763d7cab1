package types

import (
	"time"

	"github.com/tsandell/dislotrace/pkg/geom"
)

// Segment is one dislocation line: an ordered polyline through the crystal
// plus the Burgers vector shared by every span of the line. Segments are
// owned by the host data collection and are never mutated here.
type Segment struct {
	Points  []geom.Vec3 `json:"points"`
	Burgers geom.Vec3   `json:"burgers"`
}

// Frame is a single animation frame's worth of dislocation geometry, as
// delivered by the host analysis pipeline.
type Frame struct {
	Index    int       `json:"index"`
	Segments []Segment `json:"segments"`
}

// FrameResult carries the classified character totals for one frame. When
// creating a new sink backend, store the whole struct; the gorm column tags
// match both the SQLite and TimescaleDB schemas.
type FrameResult struct {
	Timestamp    time.Time `gorm:"column:time" json:"timestamp"`
	RunID        string    `gorm:"column:runid" json:"run_id"`
	FrameIndex   int       `gorm:"column:frameindex" json:"frame_index"`
	Screw        float64   `gorm:"column:screw" json:"screw"`
	Edge         float64   `gorm:"column:edge" json:"edge"`
	Mixed        float64   `gorm:"column:mixed" json:"mixed"`
	Total        float64   `gorm:"column:total" json:"total"`
	SegmentCount int       `gorm:"column:segmentcount" json:"segment_count"`
	SpanCount    int       `gorm:"column:spancount" json:"span_count"`
	MeanAngle    float64   `gorm:"column:meanangle" json:"mean_angle"`
	StdDevAngle  float64   `gorm:"column:stddevangle" json:"stddev_angle"`
}

// TableName customizes the table name used by gorm-backed sinks.
func (FrameResult) TableName() string {
	return "frame_results"
}
