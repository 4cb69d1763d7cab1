// Package framesource defines the boundary through which a host analysis
// pipeline delivers dislocation frames to the daemon.
package framesource

// FrameSource is an interface that provides standard methods for various
// frame source backends
type FrameSource interface {
	StartFrameSource() error
	SourceName() string
}
