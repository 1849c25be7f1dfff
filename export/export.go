package export

import (
	"io"

	"github.com/fontlaborg/typf/raster"
)

// Format selects a concrete file format an Output can be serialized to.
type Format int

const (
	FormatPNG Format = iota
	FormatPPM
	FormatSVG
	FormatStructured
)

// Export writes out to w in the given Format. Bitmap formats (PNG,
// PPM) require out.Bitmap; SVG requires out.Paths; Structured requires
// out.Structured — callers get ErrNilBitmap/ErrNoPaths if the Output
// wasn't produced with a matching raster.Params.Format.
func Export(w io.Writer, out *raster.Output, format Format) error {
	switch format {
	case FormatPNG:
		return EncodePNG(w, out.Bitmap)
	case FormatPPM:
		return EncodePPM(w, out.Bitmap)
	case FormatSVG:
		width, height := 0, 0
		if out.Bitmap != nil {
			width, height = out.Bitmap.Width, out.Bitmap.Height
		}
		return EncodeSVG(w, out.Paths, width, height)
	case FormatStructured:
		return EncodeStructured(w, out.Structured, out.Metrics)
	default:
		return ErrUnsupportedFormat
	}
}

// Supports reports whether format is one Export knows how to produce,
// per spec §4.6's exporter contract ("supports(format)"). Callers can
// probe this before calling Export rather than discovering an
// unsupported format by error.
func Supports(format Format) bool {
	switch format {
	case FormatPNG, FormatPPM, FormatSVG, FormatStructured:
		return true
	default:
		return false
	}
}
