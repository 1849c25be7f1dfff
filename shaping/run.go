package shaping

import "github.com/fontlaborg/typf/font"

// Glyph is one positioned output of shaping: a 32-bit glyph index,
// advances and offsets in pixel units already scaled by size/units-
// per-em, the byte offset of the source cluster in the original text,
// and the direction bit of the run it came from.
type Glyph struct {
	GID       font.GlyphID
	XAdvance  float64
	YAdvance  float64
	XOffset   float64
	YOffset   float64
	Cluster   int
	Direction font.Direction
}

// Run is the output of the shaper stage: an ordered sequence of
// positioned glyphs plus aggregate metrics.
type Run struct {
	Glyphs  []Glyph
	Advance float64
	Ascent  float64
	Descent float64
	Bounds  font.Rect
}

// Width returns the run's total extent along its writing direction.
func (r *Run) Width(dir font.Direction) float64 {
	if dir.IsVertical() {
		return r.Ascent + r.Descent
	}
	return r.Advance
}

// Height returns the run's total extent across its writing direction.
func (r *Run) Height(dir font.Direction) float64 {
	if dir.IsVertical() {
		return r.Advance
	}
	return r.Ascent + r.Descent
}

// merge concatenates additional runs onto r, advancing each
// subsequent run's glyph positions and cluster offsets so the result
// reads as one continuous run. Used by UnicodePreprocessedShaper to
// stitch together per-script-run output.
func (r *Run) merge(next *Run, clusterBase int, penX, penY float64) {
	for _, g := range next.Glyphs {
		g.Cluster += clusterBase
		g.XOffset += penX
		g.YOffset += penY
		r.Glyphs = append(r.Glyphs, g)
	}
	r.Advance += next.Advance
	if next.Ascent > r.Ascent {
		r.Ascent = next.Ascent
	}
	if next.Descent > r.Descent {
		r.Descent = next.Descent
	}
	shifted := font.Rect{
		MinX: next.Bounds.MinX + penX, MinY: next.Bounds.MinY + penY,
		MaxX: next.Bounds.MaxX + penX, MaxY: next.Bounds.MaxY + penY,
	}
	r.Bounds = r.Bounds.Union(shifted)
}
