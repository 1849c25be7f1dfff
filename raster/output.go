package raster

import (
	"image"
	"image/color"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/glyphsource"
)

// Bitmap is a straight-alpha RGBA raster image with pixel values
// already clamped to [0, 1] per channel.
type Bitmap struct {
	Width, Height int
	Pix           []Color // row-major, length Width*Height
}

// ToStdImage converts Bitmap into a standard library *image.RGBA with
// premultiplied alpha, ready for the export package's PNG encoder.
func (b *Bitmap) ToStdImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, c := range b.Pix {
		img.Set(i%b.Width, i/b.Width, color.RGBA64{
			R: uint16(clamp01(c.R*c.A) * 65535),
			G: uint16(clamp01(c.G*c.A) * 65535),
			B: uint16(clamp01(c.B*c.A) * 65535),
			A: uint16(clamp01(c.A) * 65535),
		})
	}
	return img
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PathGlyph is one glyph's vector outline, already transformed into
// target space, plus the color it should be painted with.
type PathGlyph struct {
	GID     font.GlyphID
	Outline *font.GlyphOutline
	Color   Color
	Source  glyphsource.SourceKind
}

// StructuredGlyph describes one glyph's placement and source without
// rasterizing or flattening it; it's the payload the export package's
// structured-data exporter serializes, per spec §6's glyph record.
type StructuredGlyph struct {
	GlyphID  font.GlyphID `json:"glyph_id"`
	Cluster  int          `json:"cluster"`
	XAdvance float64      `json:"x_advance"`
	YAdvance float64      `json:"y_advance"`
	XOffset  float64      `json:"x_offset"`
	YOffset  float64      `json:"y_offset"`
	Color    Color        `json:"color"`
	Source   string       `json:"source"`
}

// Metrics is the run-level metrics accompanying a structured-data
// document, per spec §6.
type Metrics struct {
	Advance float64 `json:"advance"`
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
}

// Output is the result of a Render or RenderGlyph call. Exactly one of
// Bitmap, Paths, or Structured is populated, matching Params.Format.
// Metrics is only populated alongside Structured.
type Output struct {
	Format     OutputFormat
	Bitmap     *Bitmap
	Paths      []PathGlyph
	Structured []StructuredGlyph
	Metrics    Metrics
}
