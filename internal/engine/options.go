package engine

import (
	"github.com/pzgaai/easel/internal/engine/geometry"
	"github.com/pzgaai/easel/internal/engine/history"
)

// Default configuration values.
const (
	DefaultSnapTolerance  = geometry.DefaultSnapTolerance
	DefaultRotationStep   = 45.0
	DefaultAngleTolerance = 5.0
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSnapping enables or disables snap-to-guide behavior for moves
// and rotations. Snapping is on by default.
func WithSnapping(enabled bool) Option {
	return func(e *Engine) {
		e.snapEnabled = enabled
	}
}

// WithSnapTolerance sets how close (in canvas units) an edge must be to a
// guide before it snaps.
func WithSnapTolerance(tolerance float64) Option {
	return func(e *Engine) {
		if tolerance > 0 {
			e.snapTolerance = tolerance
		}
	}
}

// WithRotationStep sets the angle step (degrees) rotation snaps to.
func WithRotationStep(step float64) Option {
	return func(e *Engine) {
		if step > 0 {
			e.rotationStep = step
		}
	}
}

// WithCanvasBounds registers the canvas rect as an additional snap guide
// source (its edges and center lines).
func WithCanvasBounds(r Rect) Option {
	return func(e *Engine) {
		e.canvasBounds = r
		e.hasCanvas = r.W > 0 && r.H > 0
	}
}

// WithHistoryOptions forwards options to the underlying history log.
func WithHistoryOptions(opts ...history.Option) Option {
	return func(e *Engine) {
		e.historyOpts = append(e.historyOpts, opts...)
	}
}
