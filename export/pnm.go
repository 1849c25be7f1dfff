package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fontlaborg/typf/raster"
)

// EncodePPM writes bitmap to w as a binary (P6) PPM image: an ASCII
// header giving width, height, and max sample value, followed by
// raw 8-bit RGB triples, alpha-composited onto a white background
// since PPM carries no alpha channel.
func EncodePPM(w io.Writer, bitmap *raster.Bitmap) error {
	if bitmap == nil {
		return ErrNilBitmap
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", bitmap.Width, bitmap.Height); err != nil {
		return fmt.Errorf("export: write PPM header: %w", err)
	}

	for _, c := range bitmap.Pix {
		r, g, b := compositeOverWhite(c)
		if _, err := bw.Write([]byte{r, g, b}); err != nil {
			return fmt.Errorf("export: write PPM pixel: %w", err)
		}
	}
	return bw.Flush()
}

// compositeOverWhite flattens a straight-alpha color onto an opaque
// white background and quantizes each channel to 8 bits.
func compositeOverWhite(c raster.Color) (r, g, b byte) {
	blend := func(channel float64) byte {
		v := channel*c.A + 1*(1-c.A)
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return byte(v * 255)
	}
	return blend(c.R), blend(c.G), blend(c.B)
}
