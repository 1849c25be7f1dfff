package raster

import (
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/shaping"
)

func testFace(t *testing.T) *font.Face {
	t.Helper()
	handle, err := font.Open(goregular.TTF)
	if err != nil {
		t.Fatalf("font.Open: %v", err)
	}
	t.Cleanup(handle.Release)
	face, err := font.NewFace(handle, 32)
	if err != nil {
		t.Fatalf("font.NewFace: %v", err)
	}
	return face
}

func testRun(face *font.Face) *shaping.Run {
	gid := face.Handle().GlyphIndex('A')
	return &shaping.Run{
		Glyphs: []shaping.Glyph{
			{GID: gid, XAdvance: 20},
		},
		Advance: 20,
	}
}

func TestBitmapRendererSupportsAllFormats(t *testing.T) {
	r := NewBitmapRenderer()
	for _, f := range []OutputFormat{OutputBitmap, OutputPath, OutputStructured} {
		if !r.SupportsFormat(f) {
			t.Fatalf("SupportsFormat(%v) = false, want true", f)
		}
	}
}

func TestRenderSurfacesTimeoutWhenBudgetElapsed(t *testing.T) {
	r := NewBitmapRenderer()
	face := testFace(t)
	run := testRun(face)
	params := DefaultParams().WithSize(100, 100).WithBudget(time.Nanosecond)

	if _, err := r.Render(run, face, params); err != ErrTimeout {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestRenderRejectsNilFace(t *testing.T) {
	r := NewBitmapRenderer()
	run := &shaping.Run{Glyphs: []shaping.Glyph{{GID: 1}}}
	if _, err := r.Render(run, nil, DefaultParams()); err != ErrNilFace {
		t.Fatalf("err = %v, want ErrNilFace", err)
	}
}

func TestRenderRejectsEmptyRun(t *testing.T) {
	r := NewBitmapRenderer()
	face := testFace(t)
	if _, err := r.Render(&shaping.Run{}, face, DefaultParams()); err != ErrEmptyRun {
		t.Fatalf("err = %v, want ErrEmptyRun", err)
	}
}

func TestRenderRejectsOversizedDimensions(t *testing.T) {
	r := NewBitmapRenderer()
	face := testFace(t)
	run := testRun(face)
	params := DefaultParams().WithSize(MaxDimension+1, 100)
	if _, err := r.Render(run, face, params); err != ErrInvalidDimensions {
		t.Fatalf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestRenderBitmapProducesNonEmptyCoverage(t *testing.T) {
	r := NewBitmapRenderer()
	face := testFace(t)
	run := testRun(face)
	params := DefaultParams().WithSize(40, 40).WithColor(Color{R: 1, G: 1, B: 1, A: 1})
	params.OriginX, params.OriginY = 2, 30

	out, err := r.Render(run, face, params)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Bitmap == nil || out.Bitmap.Width != 40 || out.Bitmap.Height != 40 {
		t.Fatalf("unexpected bitmap: %+v", out.Bitmap)
	}

	var totalAlpha float64
	for _, c := range out.Bitmap.Pix {
		totalAlpha += c.A
	}
	if totalAlpha <= 0 {
		t.Fatal("expected some covered pixels for glyph 'A', got none")
	}
}

func TestRenderPathOutputMatchesGlyphCount(t *testing.T) {
	r := NewBitmapRenderer()
	face := testFace(t)
	run := testRun(face)
	params := DefaultParams()
	params.Format = OutputPath

	out, err := r.Render(run, face, params)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out.Paths) != 1 {
		t.Fatalf("len(Paths) = %d, want 1", len(out.Paths))
	}
	if out.Paths[0].Outline.IsEmpty() {
		t.Fatal("'A' outline should not be empty")
	}
}

func TestRenderStructuredOutputTracksPenPosition(t *testing.T) {
	r := NewBitmapRenderer()
	face := testFace(t)
	run := &shaping.Run{Glyphs: []shaping.Glyph{
		{GID: 1, XAdvance: 10},
		{GID: 2, XAdvance: 15},
	}}
	params := DefaultParams()
	params.Format = OutputStructured

	out, err := r.Render(run, face, params)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out.Structured) != 2 {
		t.Fatalf("len(Structured) = %d, want 2", len(out.Structured))
	}
	if out.Structured[0].XOffset != 0 || out.Structured[1].XOffset != 10 {
		t.Fatalf("pen positions = %v, %v; want 0, 10", out.Structured[0].XOffset, out.Structured[1].XOffset)
	}
}

func TestRenderGlyphIgnoresRunPositioning(t *testing.T) {
	r := NewBitmapRenderer()
	face := testFace(t)
	gid := face.Handle().GlyphIndex('A')

	params := DefaultParams().WithSize(40, 40)
	out, err := r.RenderGlyph(gid, face, params)
	if err != nil {
		t.Fatalf("RenderGlyph: %v", err)
	}
	if out.Bitmap.Width != 40 {
		t.Fatalf("unexpected width %d", out.Bitmap.Width)
	}
}

func TestNativeRendererUnavailableByDefault(t *testing.T) {
	if _, err := NewNativeRenderer(); err != ErrBackendUnavailable {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestSourceOverFullyOpaqueSourceReplacesDestination(t *testing.T) {
	dst := Color{R: 1, A: 1}
	src := Color{G: 1, A: 1}
	got := sourceOver(src, dst)
	if got.R != 0 || got.G != 1 || got.A != 1 {
		t.Fatalf("sourceOver = %+v, want opaque green", got)
	}
}

func TestAddSpanSplitsPartialPixelCoverage(t *testing.T) {
	row := make([]float32, 4)
	addSpan(row, 4, 0.5, 2.5, 1.0)
	if row[0] != 0.5 || row[1] != 1 || row[2] != 0.5 || row[3] != 0 {
		t.Fatalf("row = %v, want [0.5 1 0.5 0]", row)
	}
}
