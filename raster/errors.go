package raster

import (
	"errors"
	"fmt"
)

// Sentinel errors returned directly by this package. The orchestrator
// (package typf) tags these with the originating stage rather than
// wrapping them further.
var (
	// ErrEmptyRun is returned when Render is given a run with no glyphs.
	ErrEmptyRun = errors.New("raster: empty glyph run")

	// ErrNilFace is returned when an operation is given a nil face.
	ErrNilFace = errors.New("raster: nil font face")

	// ErrInvalidDimensions is returned when a requested bitmap target
	// is zero, negative, or exceeds MaxDimension on either axis.
	ErrInvalidDimensions = errors.New("raster: invalid target dimensions")

	// ErrInvalidPadding is returned when any Padding side is negative.
	ErrInvalidPadding = errors.New("raster: padding must be non-negative")

	// ErrVariationMismatch is returned when Params.Variations doesn't
	// match the variation instance the font.Handle was built with.
	ErrVariationMismatch = errors.New("raster: render variations do not match font instance")

	// ErrMissingGlyph is returned by Render and RenderGlyph, for bitmap
	// and path output, when no glyph of the run yields an outline.
	// Bitmap and SVG glyph data are not consulted for this check.
	ErrMissingGlyph = errors.New("raster: glyph has no renderable source")

	// ErrUnsupportedFormat is returned when a renderer is asked to
	// produce an OutputFormat it does not support.
	ErrUnsupportedFormat = errors.New("raster: unsupported output format")

	// ErrTimeout is returned when Params.Budget elapses before Render
	// or RenderGlyph reaches the next checkpoint.
	ErrTimeout = errors.New("raster: soft budget exceeded")
)

// BackendFailure wraps a panic or error recovered from a native
// rendering backend, so callers never see a raw panic escape the
// public Render boundary.
type BackendFailure struct {
	Backend string
	Err     error
}

func (e *BackendFailure) Error() string {
	return fmt.Sprintf("raster: backend %q failed: %v", e.Backend, e.Err)
}

func (e *BackendFailure) Unwrap() error { return e.Err }
