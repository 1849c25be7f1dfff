package raster

import (
	"github.com/fontlaborg/typf/emoji"
	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/glyphsource"
)

// colrReader is the slice of *emoji.ColorTable this package actually
// calls, broken out so tests can supply a fake table without parsing
// real COLR bytes.
type colrReader interface {
	GetGlyphV0(gid font.GlyphID, paletteIndex int) (*emoji.ColorGlyph, error)
	GetGlyphV1(gid font.GlyphID, paletteIndex int) (*emoji.ColorGlyph, error)
}

// ColorSource wires a font's color-glyph tables into a Renderer. It
// pairs glyphsource.Availability (so Resolve can probe which kinds a
// glyph actually has) with direct access to the parsed COLR table, the
// only color source this renderer can paint itself.
// NewFontColorSource adapts an *emoji.Font to it.
type ColorSource interface {
	glyphsource.Availability
	ColorTable() colrReader
}

// fontColorSource adapts an *emoji.Font to ColorSource.
type fontColorSource struct{ font *emoji.Font }

// NewFontColorSource wraps handle's color tables for use as a
// BitmapRenderer's color source.
func NewFontColorSource(handle *font.Handle) ColorSource {
	return fontColorSource{font: emoji.NewFont(handle)}
}

func (s fontColorSource) Has(kind glyphsource.SourceKind, gid font.GlyphID) bool {
	return s.font.Has(kind, gid)
}

func (s fontColorSource) ColorTable() colrReader {
	t := s.font.ColorTable()
	if t == nil {
		return nil
	}
	return t
}

// resolveColorLayers returns the ordered paint layers for gid if pref
// allows a COLR source and the font has one, with foreground layers
// (PaletteIndex 0xFFFF) resolved to fg rather than a palette entry.
// ok is false when gid should fall back to its plain outline: either
// no COLR data, or the resolver's allow-list picked a source (sbix,
// CBDT, embedded SVG) this renderer has no pixel/vector decoder for.
func resolveColorLayers(src ColorSource, gid font.GlyphID, pref glyphsource.Preference, fg Color) ([]ColorLayer, glyphsource.SourceKind, bool) {
	if src == nil {
		return nil, 0, false
	}
	resolved, err := glyphsource.Resolve(src, gid, pref)
	if err != nil || !resolved.Kind.IsColor() {
		return nil, 0, false
	}

	table := src.ColorTable()
	if table == nil {
		return nil, 0, false
	}

	var (
		glyph *emoji.ColorGlyph
		gerr  error
	)
	switch resolved.Kind {
	case glyphsource.ColorV1:
		glyph, gerr = table.GetGlyphV1(gid, 0)
	case glyphsource.ColorV0:
		glyph, gerr = table.GetGlyphV0(gid, 0)
	default:
		// sbix, CBDT, embedded SVG: no decoder in this renderer.
		return nil, 0, false
	}
	if gerr != nil || glyph == nil || len(glyph.Layers) == 0 {
		return nil, 0, false
	}

	layers := make([]ColorLayer, len(glyph.Layers))
	for i, l := range glyph.Layers {
		c := fg
		if !l.IsForeground() {
			c = Color{
				R: float64(l.Color.R) / 255,
				G: float64(l.Color.G) / 255,
				B: float64(l.Color.B) / 255,
				A: float64(l.Color.A) / 255,
			}
		}
		layers[i] = ColorLayer{GID: l.GlyphID, Color: c}
	}
	return layers, resolved.Kind, true
}

// ColorLayer is one tinted outline layer of a resolved color glyph,
// already mapped to a concrete glyph id and RGBA color ready to draw
// with the same scanline fill as a monochrome outline.
type ColorLayer struct {
	GID   font.GlyphID
	Color Color
}
