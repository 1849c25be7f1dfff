package export

import (
	"fmt"
	"image/png"
	"io"

	"github.com/fontlaborg/typf/raster"
)

// EncodePNG writes bitmap to w as a PNG image, using the standard
// library encoder the same way the teacher's own image buffer does.
func EncodePNG(w io.Writer, bitmap *raster.Bitmap) error {
	if bitmap == nil {
		return ErrNilBitmap
	}
	if err := png.Encode(w, bitmap.ToStdImage()); err != nil {
		return fmt.Errorf("export: encode PNG: %w", err)
	}
	return nil
}
