package raster

import (
	"testing"

	"github.com/fontlaborg/typf/emoji"
	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/glyphsource"
)

// fakeColorSource reports a single glyph as COLR-v1 and returns a
// fixed two-layer paint for it, so the renderer's layering path can be
// exercised without parsing a real COLR-bearing font.
type fakeColorSource struct {
	colorGID font.GlyphID
	layers   []emoji.ColorLayer
}

func (s fakeColorSource) Has(kind glyphsource.SourceKind, gid font.GlyphID) bool {
	if gid != s.colorGID {
		return kind == glyphsource.GlyfOutline
	}
	switch kind {
	case glyphsource.ColorV1, glyphsource.GlyfOutline:
		return true
	default:
		return false
	}
}

func (s fakeColorSource) ColorTable() colrReader { return s }

func (s fakeColorSource) GetGlyphV0(font.GlyphID, int) (*emoji.ColorGlyph, error) {
	return nil, emoji.ErrGlyphNotInCOLR
}

func (s fakeColorSource) GetGlyphV1(gid font.GlyphID, _ int) (*emoji.ColorGlyph, error) {
	if gid != s.colorGID {
		return nil, emoji.ErrGlyphNotInCOLR
	}
	return &emoji.ColorGlyph{GlyphID: gid, Layers: s.layers, Version: 1}, nil
}

func colorPreference() glyphsource.Preference {
	pref, err := glyphsource.NewPreference([]glyphsource.SourceKind{glyphsource.ColorV1, glyphsource.ColorV0}, nil)
	if err != nil {
		panic(err)
	}
	return pref
}

func TestBitmapRendererPaintsColorLayers(t *testing.T) {
	face := testFace(t)
	run := testRun(face)
	gid := run.Glyphs[0].GID

	src := fakeColorSource{
		colorGID: gid,
		layers: []emoji.ColorLayer{
			{GlyphID: gid, PaletteIndex: 0xFFFF}, // foreground
			{GlyphID: gid, PaletteIndex: 1, Color: emoji.Color{R: 200, G: 10, B: 10, A: 255}},
		},
	}
	r := NewColorBitmapRenderer(src, colorPreference())

	out, err := r.Render(run, face, Params{Format: OutputPath, Color: Color{R: 0, G: 0, B: 0, A: 1}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out.Paths) != 2 {
		t.Fatalf("got %d path layers, want 2", len(out.Paths))
	}
	if out.Paths[0].Source != glyphsource.ColorV1 || out.Paths[1].Source != glyphsource.ColorV1 {
		t.Fatalf("layer sources = %v, %v, want ColorV1 both", out.Paths[0].Source, out.Paths[1].Source)
	}
	if out.Paths[0].Color != (Color{R: 0, G: 0, B: 0, A: 1}) {
		t.Fatalf("foreground layer color = %v, want caller fg", out.Paths[0].Color)
	}
	wantTint := Color{R: 200.0 / 255, G: 10.0 / 255, B: 10.0 / 255, A: 1}
	if out.Paths[1].Color != wantTint {
		t.Fatalf("palette layer color = %v, want %v", out.Paths[1].Color, wantTint)
	}
}

func TestBitmapRendererFallsBackWhenColorSourceUnpaintable(t *testing.T) {
	face := testFace(t)
	run := testRun(face)
	gid := run.Glyphs[0].GID

	// Reports the glyph as only available via an embedded bitmap, which
	// this renderer cannot decode; resolveColorLayers must report no
	// layers so the caller falls back to the plain outline.
	src := unpaintableColorSource{colorGID: gid}
	r := NewColorBitmapRenderer(src, mustPreference(glyphsource.EmbeddedBitmapCBDT))

	params := DefaultParams().WithSize(40, 40)
	params.OriginX, params.OriginY = 2, 30
	out, err := r.Render(run, face, params)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Bitmap == nil {
		t.Fatal("expected a bitmap output")
	}
	nonZero := false
	for _, c := range out.Bitmap.Pix {
		if c.A > 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatal("fallback outline produced an entirely blank bitmap")
	}
}

type unpaintableColorSource struct{ colorGID font.GlyphID }

func (s unpaintableColorSource) Has(kind glyphsource.SourceKind, gid font.GlyphID) bool {
	if gid != s.colorGID {
		return kind == glyphsource.GlyfOutline
	}
	switch kind {
	case glyphsource.EmbeddedBitmapCBDT, glyphsource.GlyfOutline:
		return true
	default:
		return false
	}
}

func (s unpaintableColorSource) ColorTable() colrReader { return nil }

func mustPreference(kinds ...glyphsource.SourceKind) glyphsource.Preference {
	pref, err := glyphsource.NewPreference(kinds, nil)
	if err != nil {
		panic(err)
	}
	return pref
}
