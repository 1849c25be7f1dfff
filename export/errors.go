package export

import "errors"

var (
	// ErrNilBitmap is returned when a bitmap exporter is given nil input.
	ErrNilBitmap = errors.New("export: nil bitmap")

	// ErrNoPaths is returned when the SVG exporter is given an output
	// with no path glyphs.
	ErrNoPaths = errors.New("export: no path glyphs to export")

	// ErrUnsupportedFormat is returned when Export is asked to produce
	// a Format this package doesn't implement.
	ErrUnsupportedFormat = errors.New("export: unsupported export format")
)
