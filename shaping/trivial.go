package shaping

import (
	"time"

	"github.com/fontlaborg/typf/font"
)

// TrivialShaper positions one glyph per rune, left to right, using
// only the font's cmap and advance-width tables: no ligatures,
// kerning, contextual forms, or reordering. It supports no script
// beyond what falls out of that (i.e. it advertises none, even though
// it happens to produce readable Latin text) so callers needing
// correct Arabic or Indic shaping route to OpenTypeShaper instead.
type TrivialShaper struct {
	unsupportedCapabilities
}

func (s *TrivialShaper) Shape(text string, face *font.Face, params Params) (*Run, error) {
	if face == nil {
		return nil, ErrNilFace
	}

	handle := face.Handle()
	ppem := face.PPEM(1)
	metrics := handle.Metrics(ppem)

	runes := []rune(text)
	glyphs := make([]Glyph, 0, len(runes))

	var x float64
	byteOffset := 0
	var bounds font.Rect
	start := time.Now()

	for _, r := range runes {
		if params.Budget > 0 && time.Since(start) > params.Budget {
			return nil, ErrTimeout
		}
		gid := handle.GlyphIndex(r)
		advance := handle.GlyphAdvance(gid, ppem)

		glyphs = append(glyphs, Glyph{
			GID:      gid,
			XAdvance: advance,
			Cluster:  byteOffset,
		})

		if gb := handle.GlyphBounds(gid, ppem); !gb.Empty() {
			shifted := font.Rect{MinX: gb.MinX + x, MinY: gb.MinY, MaxX: gb.MaxX + x, MaxY: gb.MaxY}
			bounds = bounds.Union(shifted)
		}

		x += advance
		byteOffset += len(string(r))
	}

	return &Run{
		Glyphs:  glyphs,
		Advance: x,
		Ascent:  metrics.Ascent,
		Descent: -metrics.Descent,
		Bounds:  bounds,
	}, nil
}

func (s *TrivialShaper) ShapeGlyph(gid font.GlyphID, face *font.Face, params Params) (*Run, error) {
	return shapeGlyphDirect(face, gid, params)
}
