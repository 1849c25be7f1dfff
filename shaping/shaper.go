package shaping

import (
	"errors"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/unicodedata"
)

// Sentinel errors surfaced by shapers; the orchestrator tags these
// with the shaping stage rather than transforming them.
var (
	ErrNilFace            = errors.New("shaping: face is nil")
	ErrUnsupportedScript  = errors.New("shaping: script not supported by this shaper")
	ErrUnsupportedFeature = errors.New("shaping: feature not supported by this shaper")
	ErrBackendUnavailable = errors.New("shaping: native backend not available in this build")

	// ErrTimeout is returned when Params.Budget elapses before Shape
	// or ShapeGlyph reaches the next between-glyph checkpoint.
	ErrTimeout = errors.New("shaping: soft budget exceeded")
)

// Shaper converts text into a positioned glyph run against a face.
//
// Capability probes (SupportsScript, SupportsFeature) must default to
// false: a shaper advertises what it supports explicitly rather than
// being assumed capable, so a caller that requires, say, Arabic
// reordering can detect a plain Latin-only shaper before it silently
// emits garbled output.
type Shaper interface {
	Shape(text string, face *font.Face, params Params) (*Run, error)

	// ShapeGlyph produces a single-glyph Run for gid in isolation,
	// without a cmap lookup or any contextual GSUB/GPOS rule applying
	// (there is no adjacent glyph to apply one against). Atlas
	// builders use this the way raster.Renderer.RenderGlyph renders
	// one glyph tile independent of the text that will reference it.
	ShapeGlyph(gid font.GlyphID, face *font.Face, params Params) (*Run, error)

	SupportsScript(s unicodedata.Script) bool
	SupportsFeature(tag string) bool
}

// shapeGlyphDirect builds a single-glyph Run from the font's
// glyph-index tables directly (advance, bounds, face metrics),
// bypassing the text-shaping engine entirely since the caller already
// has a glyph index rather than text to segment and shape. Shared by
// every Shaper whose ShapeGlyph has no engine-specific behavior to
// contribute over a plain glyph-metrics lookup.
func shapeGlyphDirect(face *font.Face, gid font.GlyphID, params Params) (*Run, error) {
	if face == nil {
		return nil, ErrNilFace
	}
	handle := face.Handle()
	ppem := face.PPEM(1)
	advance := handle.GlyphAdvance(gid, ppem)
	metrics := handle.Metrics(ppem)
	return &Run{
		Glyphs:  []Glyph{{GID: gid, XAdvance: advance}},
		Advance: advance,
		Ascent:  metrics.Ascent,
		Descent: -metrics.Descent,
		Bounds:  handle.GlyphBounds(gid, ppem),
	}, nil
}

// unsupportedCapabilities is embedded by shapers that support neither
// per-script nor per-feature capability queries beyond "none", so the
// false-by-default rule doesn't need repeating in every shaper file.
type unsupportedCapabilities struct{}

func (unsupportedCapabilities) SupportsScript(unicodedata.Script) bool { return false }
func (unsupportedCapabilities) SupportsFeature(string) bool            { return false }
