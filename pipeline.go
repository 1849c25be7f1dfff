package typf

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/fontlaborg/typf/export"
	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/raster"
	"github.com/fontlaborg/typf/shaping"
)

// Pipeline holds one backend per stage and runs text through them
// against a shared font. A Pipeline is stateless between calls and
// may be shared across goroutines, since its backends (per their own
// contracts) are.
type Pipeline struct {
	Shaper   shaping.Shaper
	Renderer raster.Renderer
	Format   export.Format
}

// New constructs a Pipeline from the given backends. shaper and
// renderer must be non-nil; format selects the exporter Process uses.
func New(shaper shaping.Shaper, renderer raster.Renderer, format export.Format) *Pipeline {
	return &Pipeline{Shaper: shaper, Renderer: renderer, Format: format}
}

// Process runs text through shaping, rendering, and export in order,
// short-circuiting at the first failing stage. The returned error is
// always a *StageError identifying which step failed.
func (p *Pipeline) Process(text string, face *font.Face, shapeParams shaping.Params, renderParams raster.Params) ([]byte, error) {
	if err := p.validateInput(text, face, shapeParams); err != nil {
		return nil, wrapStage(StageInput, err)
	}
	if renderParams.Padding.Top < 0 || renderParams.Padding.Right < 0 || renderParams.Padding.Bottom < 0 || renderParams.Padding.Left < 0 {
		return nil, wrapStage(StageInput, ErrInvalidArgument)
	}

	run, err := p.ShapeOnly(text, face, shapeParams)
	if err != nil {
		return nil, err
	}

	output, err := p.RenderOnly(run, face, renderParams)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.Export(&buf, output, p.Format); err != nil {
		return nil, wrapStage(StageExport, err)
	}
	return buf.Bytes(), nil
}

// ShapeOnly runs only the shaping stage, for consumers that render
// themselves. Results are memoized in a process-wide two-level cache
// keyed on (text, font identity, params); see package cache for the
// transparency guarantee this relies on.
func (p *Pipeline) ShapeOnly(text string, face *font.Face, params shaping.Params) (run *shaping.Run, err error) {
	if err := p.validateInput(text, face, params); err != nil {
		return nil, wrapStage(StageInput, err)
	}

	key := newShapeKey(text, face, params)
	fp := key.fingerprint()
	if cached, ok := shapeCache.Get(fp, key); ok {
		return cached, nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = wrapStage(StageShaping, &shaping.BackendFailure{Backend: "shape", Err: fmt.Errorf("%v", rec)})
		}
	}()

	run, err = p.Shaper.Shape(text, face, params)
	if err != nil {
		return nil, wrapStage(StageShaping, err)
	}
	shapeCache.Put(fp, key, run)
	return run, nil
}

// RenderOnly runs only the rendering stage against an already-shaped
// run. On failure the render output is discarded, never partially
// returned.
func (p *Pipeline) RenderOnly(run *shaping.Run, face *font.Face, params raster.Params) (out *raster.Output, err error) {
	if face == nil {
		return nil, wrapStage(StageRendering, raster.ErrNilFace)
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = wrapStage(StageRendering, &raster.BackendFailure{Backend: "render", Err: fmt.Errorf("%v", rec)})
			out = nil
		}
	}()

	out, err = p.Renderer.Render(run, face, params)
	if err != nil {
		return nil, wrapStage(StageRendering, err)
	}
	return out, nil
}

// validateInput checks the boundary conditions spec §4.1 requires a
// pipeline call to reject before any stage runs: a non-null face,
// valid-UTF8 text, and parameters in their defined ranges (size > 0).
func (p *Pipeline) validateInput(text string, face *font.Face, params shaping.Params) error {
	if face == nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, font.ErrNilHandle)
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	if params.Size <= 0 {
		return ErrInvalidArgument
	}
	return nil
}
