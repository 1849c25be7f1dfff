package typf

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/fontlaborg/typf/export"
	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/raster"
	"github.com/fontlaborg/typf/shaping"
	"github.com/fontlaborg/typf/unicodedata"
)

func testFace(t *testing.T) *font.Face {
	t.Helper()
	handle, err := font.Open(goregular.TTF)
	if err != nil {
		t.Fatalf("font.Open: %v", err)
	}
	t.Cleanup(handle.Release)
	face, err := font.NewFace(handle, 16)
	if err != nil {
		t.Fatalf("font.NewFace: %v", err)
	}
	return face
}

// panickingShaper always panics, to exercise the recover-to-
// BackendFailure boundary.
type panickingShaper struct{}

func (panickingShaper) Shape(string, *font.Face, shaping.Params) (*shaping.Run, error) {
	panic("boom")
}
func (panickingShaper) ShapeGlyph(font.GlyphID, *font.Face, shaping.Params) (*shaping.Run, error) {
	panic("boom")
}
func (panickingShaper) SupportsScript(unicodedata.Script) bool { return false }
func (panickingShaper) SupportsFeature(string) bool            { return false }

// erroringRenderer always returns an error, to exercise stage tagging.
type erroringRenderer struct{}

var errRenderBoom = errors.New("render boom")

func (erroringRenderer) Render(*shaping.Run, *font.Face, raster.Params) (*raster.Output, error) {
	return nil, errRenderBoom
}
func (erroringRenderer) RenderGlyph(font.GlyphID, *font.Face, raster.Params) (*raster.Output, error) {
	return nil, errRenderBoom
}
func (erroringRenderer) SupportsFormat(raster.OutputFormat) bool { return true }

func TestProcessRejectsInvalidUTF8(t *testing.T) {
	p := New(&shaping.TrivialShaper{}, raster.NewBitmapRenderer(), export.FormatStructured)
	face := testFace(t)

	_, err := p.Process("\xff\xfe", face, shaping.Params{Size: 16}, raster.DefaultParams())
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageInput {
		t.Fatalf("err = %v, want StageInput StageError", err)
	}
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("err = %v, want wrapping ErrInvalidUTF8", err)
	}
}

func TestProcessRejectsNilFace(t *testing.T) {
	p := New(&shaping.TrivialShaper{}, raster.NewBitmapRenderer(), export.FormatStructured)

	_, err := p.Process("hi", nil, shaping.Params{Size: 16}, raster.DefaultParams())
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageInput {
		t.Fatalf("err = %v, want StageInput StageError", err)
	}
}

func TestProcessRejectsZeroSize(t *testing.T) {
	p := New(&shaping.TrivialShaper{}, raster.NewBitmapRenderer(), export.FormatStructured)
	face := testFace(t)

	_, err := p.Process("hi", face, shaping.Params{Size: 0}, raster.DefaultParams())
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageInput {
		t.Fatalf("err = %v, want StageInput StageError", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want wrapping ErrInvalidArgument", err)
	}
}

func TestProcessRejectsNegativePadding(t *testing.T) {
	p := New(&shaping.TrivialShaper{}, raster.NewBitmapRenderer(), export.FormatStructured)
	face := testFace(t)

	renderParams := raster.DefaultParams().WithPadding(-1, 0, 0, 0)
	_, err := p.Process("hi", face, shaping.Params{Size: 16}, renderParams)
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageInput {
		t.Fatalf("err = %v, want StageInput StageError", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want wrapping ErrInvalidArgument", err)
	}
}

func TestProcessEndToEndStructured(t *testing.T) {
	p := New(&shaping.TrivialShaper{}, raster.NewBitmapRenderer(), export.FormatStructured)
	face := testFace(t)

	out, err := p.Process("Hi", face, shaping.Params{Size: 16}, raster.Params{Format: raster.OutputStructured})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty structured output")
	}
}

func TestShapeOnlyConvertsPanicToBackendFailure(t *testing.T) {
	p := New(panickingShaper{}, raster.NewBitmapRenderer(), export.FormatStructured)
	face := testFace(t)

	_, err := p.ShapeOnly("Hi", face, shaping.Params{Size: 16})
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageShaping {
		t.Fatalf("err = %v, want StageShaping StageError", err)
	}
	var bf *shaping.BackendFailure
	if !errors.As(err, &bf) {
		t.Fatalf("err = %v, want wrapped *shaping.BackendFailure", err)
	}
}

func TestRenderOnlyTagsRenderingStage(t *testing.T) {
	p := New(&shaping.TrivialShaper{}, erroringRenderer{}, export.FormatStructured)
	face := testFace(t)

	run := &shaping.Run{Glyphs: []shaping.Glyph{{GID: 1}}}
	_, err := p.RenderOnly(run, face, raster.DefaultParams())
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageRendering {
		t.Fatalf("err = %v, want StageRendering StageError", err)
	}
	if !errors.Is(err, errRenderBoom) {
		t.Fatalf("err = %v, want wrapping errRenderBoom", err)
	}
}

func TestProcessLinraFallsBackWithoutFusedShaper(t *testing.T) {
	p := New(&shaping.TrivialShaper{}, raster.NewBitmapRenderer(), export.FormatStructured)
	face := testFace(t)

	out, err := p.ProcessLinra("Hi", face, shaping.Params{Size: 16}, raster.Params{Format: raster.OutputStructured})
	if err != nil {
		t.Fatalf("ProcessLinra: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty output via fallback path")
	}
}
