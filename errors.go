package typf

import (
	"errors"
	"fmt"
)

// Stage identifies which pipeline step produced an error.
type Stage int

const (
	StageInput Stage = iota
	StageUnicode
	StageShaping
	StageGlyphSource
	StageRendering
	StageExport
)

func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageUnicode:
		return "unicode"
	case StageShaping:
		return "shaping"
	case StageGlyphSource:
		return "glyphsource"
	case StageRendering:
		return "rendering"
	case StageExport:
		return "export"
	default:
		return "unknown"
	}
}

// StageError tags an underlying error with the pipeline stage that
// produced it. The orchestrator never transforms a backend's error,
// it only wraps it in a StageError so callers can tell which step
// failed without inspecting error text.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("typf: %s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func wrapStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// Top-level taxonomy sentinels (§7). A Pipeline's own input checks
// return these, wrapped in a StageError for StageInput. Stage-specific
// packages (font, shaping, raster, export) define their own sentinels
// for the same categories; an error raised inside a stage surfaces
// directly, wrapped in a StageError, rather than being replaced with
// these.
var (
	// ErrInvalidArgument is returned for a null handle, zero size, or
	// malformed parameter caught before any stage runs.
	ErrInvalidArgument = errors.New("typf: invalid argument")

	// ErrInvalidUTF8 is returned when Process/ShapeOnly is given text
	// that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("typf: text is not valid UTF-8")
)
