package typf

import (
	"bytes"

	"github.com/fontlaborg/typf/export"
	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/raster"
	"github.com/fontlaborg/typf/shaping"
)

// LinraShaper is implemented by a native shaper whose underlying
// platform engine only exposes a combined shape+render call. A
// Pipeline whose Shaper also implements LinraShaper collapses the
// shaping and rendering stages into one call via ShapeRender instead
// of running them separately, matching what the platform actually
// does under the hood rather than faking a two-step boundary.
type LinraShaper interface {
	shaping.Shaper
	ShapeRender(text string, face *font.Face, shapeParams shaping.Params, renderParams raster.Params) (*raster.Output, error)
}

// ProcessLinra runs text through the fused shape+render path when
// p.Shaper supports it, falling back to the regular two-stage path
// otherwise. The export stage still runs separately, since no
// platform engine this package targets fuses export into the same
// call.
func (p *Pipeline) ProcessLinra(text string, face *font.Face, shapeParams shaping.Params, renderParams raster.Params) ([]byte, error) {
	fused, ok := p.Shaper.(LinraShaper)
	if !ok {
		return p.Process(text, face, shapeParams, renderParams)
	}

	if err := p.validateInput(text, face, shapeParams); err != nil {
		return nil, wrapStage(StageInput, err)
	}

	output, err := fused.ShapeRender(text, face, shapeParams, renderParams)
	if err != nil {
		return nil, wrapStage(StageRendering, err)
	}

	var buf bytes.Buffer
	if err := export.Export(&buf, output, p.Format); err != nil {
		return nil, wrapStage(StageExport, err)
	}
	return buf.Bytes(), nil
}
