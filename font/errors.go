package font

import "errors"

// Sentinel errors returned directly by this package. The orchestrator
// (package typf) tags these with the originating stage rather than
// wrapping them further.
var (
	// ErrEmptyData is returned when font bytes are empty.
	ErrEmptyData = errors.New("font: empty font data")

	// ErrNilHandle is returned when an operation is given a nil Handle.
	ErrNilHandle = errors.New("font: handle is nil")

	// ErrFaceIndexOutOfRange is returned when faceIndex does not exist
	// in a font collection file.
	ErrFaceIndexOutOfRange = errors.New("font: face index out of range")

	// ErrUnsupportedReader is returned when a table reader name isn't
	// registered.
	ErrUnsupportedReader = errors.New("font: unsupported table reader backend")

	// ErrNoOutline is returned when Outline is asked for a
	// glyph with no outline data (e.g. a pure-bitmap or pure-SVG
	// color glyph, or space).
	ErrNoOutline = errors.New("font: glyph has no outline")
)

// IoError wraps a failure to read font bytes from storage.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	if e.Path != "" {
		return "font: io error reading " + e.Path + ": " + e.Err.Error()
	}
	return "font: io error: " + e.Err.Error()
}

func (e *IoError) Unwrap() error { return e.Err }

// ParseError wraps a failure to parse font bytes as a valid SFNT font.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "font: parse error: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }
