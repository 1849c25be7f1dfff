package export

import (
	"fmt"
	"io"
	"math"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/raster"
)

// EncodeSVG writes paths to w as a standalone SVG document, one <path>
// element per glyph. width and height set the document's viewBox.
//
// Glyph IDs are emitted as plain decimal integers in the id attribute
// (id="glyph123456789"), never truncated to 16 bits: a font outside
// the Basic Multilingual collection range must round-trip through
// this exporter exactly like any other.
func EncodeSVG(w io.Writer, paths []raster.PathGlyph, width, height int) error {
	if len(paths) == 0 {
		return ErrNoPaths
	}

	if _, err := fmt.Fprintf(w, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		width, height, width, height); err != nil {
		return fmt.Errorf("export: write SVG header: %w", err)
	}

	for _, pg := range paths {
		if pg.Outline.IsEmpty() {
			continue
		}
		d := outlineToSVGPath(pg.Outline)
		fill := colorToSVGFill(pg.Color)
		if _, err := fmt.Fprintf(w, "  <path id=\"glyph%d\" d=\"%s\" fill=\"%s\" fill-opacity=\"%s\"/>\n",
			uint32(pg.GID), d, fill, formatOpacity(pg.Color.A)); err != nil {
			return fmt.Errorf("export: write SVG path: %w", err)
		}
	}

	if _, err := fmt.Fprint(w, "</svg>\n"); err != nil {
		return fmt.Errorf("export: write SVG footer: %w", err)
	}
	return nil
}

// outlineToSVGPath converts a glyph outline's MoveTo/LineTo/QuadTo/
// CubicTo segments into an SVG path data string, mirroring the verb
// stream 1:1 (SVG's Q and C commands map directly onto QuadTo/CubicTo,
// so no curve degree conversion is needed).
func outlineToSVGPath(o *font.GlyphOutline) string {
	var d string
	for _, seg := range o.Segments {
		switch seg.Op {
		case font.OutlineOpMoveTo:
			d += fmt.Sprintf("M%s ", pt(seg.Points[0]))
		case font.OutlineOpLineTo:
			d += fmt.Sprintf("L%s ", pt(seg.Points[0]))
		case font.OutlineOpQuadTo:
			d += fmt.Sprintf("Q%s %s ", pt(seg.Points[0]), pt(seg.Points[1]))
		case font.OutlineOpCubicTo:
			d += fmt.Sprintf("C%s %s %s ", pt(seg.Points[0]), pt(seg.Points[1]), pt(seg.Points[2]))
		}
	}
	d += "Z"
	return d
}

func pt(p font.OutlinePoint) string {
	return fmt.Sprintf("%s,%s", trimFloat(float64(p.X)), trimFloat(float64(p.Y)))
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.3f", v)
}

func colorToSVGFill(c raster.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return byte(v * 255)
}

func formatOpacity(a float64) string {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return fmt.Sprintf("%.3f", a)
}
