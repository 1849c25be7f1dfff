package raster

import (
	"time"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/glyphsource"
	"github.com/fontlaborg/typf/raster/simd"
	"github.com/fontlaborg/typf/shaping"
)

// Renderer turns a shaped run, or a single glyph in isolation, into
// pixels, paths, or a structured description.
//
// Implementations must be safe for concurrent use by multiple
// goroutines: a Pipeline shares its one Renderer across every
// goroutine that calls it.
type Renderer interface {
	// Render draws every glyph in run to the output shape selected by
	// params.Format.
	Render(run *shaping.Run, face *font.Face, params Params) (*Output, error)

	// RenderGlyph draws a single glyph in isolation, at the origin,
	// ignoring any positioning a shaped run would have applied. Atlas
	// builders use this to produce one tile per glyph independent of
	// the text that will eventually reference it.
	RenderGlyph(gid font.GlyphID, face *font.Face, params Params) (*Output, error)

	// SupportsFormat reports whether this renderer can produce the
	// given OutputFormat. Renderers must default to false for formats
	// they don't implement rather than silently downgrading output.
	SupportsFormat(f OutputFormat) bool
}

// BitmapRenderer rasterizes runs using the scanline coverage fill in
// this package: each glyph outline is flattened to line segments,
// filled with non-zero winding, supersampled vertically, and
// composited with Porter-Duff source-over.
//
// Color is optional. When nil, every glyph is painted as a monochrome
// outline in Params.Color. When set, each glyph is resolved against
// Pref first: a COLR-v0/v1 hit is painted as its stack of tinted
// layers; any other color source this renderer can't decode pixels or
// vector documents for (sbix, CBDT, embedded SVG) falls back to the
// glyph's plain outline rather than being left blank, per the
// never-silently-blank requirement for color glyphs.
type BitmapRenderer struct {
	Color ColorSource
	Pref  glyphsource.Preference
}

// NewBitmapRenderer returns a software Renderer with no external
// dependencies and no color-glyph support.
func NewBitmapRenderer() *BitmapRenderer { return &BitmapRenderer{} }

// NewColorBitmapRenderer returns a BitmapRenderer that paints COLR
// color glyphs using src, falling back to monochrome outlines for any
// glyph COLR doesn't cover or pref doesn't allow.
func NewColorBitmapRenderer(src ColorSource, pref glyphsource.Preference) *BitmapRenderer {
	return &BitmapRenderer{Color: src, Pref: pref}
}

func (r *BitmapRenderer) SupportsFormat(f OutputFormat) bool {
	switch f {
	case OutputBitmap, OutputPath, OutputStructured:
		return true
	default:
		return false
	}
}

func (r *BitmapRenderer) Render(run *shaping.Run, face *font.Face, params Params) (*Output, error) {
	if face == nil {
		return nil, ErrNilFace
	}
	if run == nil || len(run.Glyphs) == 0 {
		return nil, ErrEmptyRun
	}
	if err := params.validatePadding(); err != nil {
		return nil, err
	}
	if !variationsMatch(params.Variations, face.Variations()) {
		return nil, ErrVariationMismatch
	}
	params = params.autoLayout(run, face.Direction())
	if err := params.validateDimensions(); err != nil {
		return nil, err
	}

	start := time.Now()
	switch params.Format {
	case OutputBitmap:
		return r.renderBitmap(run, face, params, start)
	case OutputPath:
		return r.renderPaths(run, face, params, start)
	case OutputStructured:
		return r.renderStructured(run, face, params, start)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// budgetExceeded reports whether params.Budget has elapsed since
// start; a zero Budget means no deadline is enforced.
func budgetExceeded(params Params, start time.Time) bool {
	return params.Budget > 0 && time.Since(start) > params.Budget
}

// variationsMatch reports whether want (the render call's expected
// instance) is satisfied by got (the font.Handle's actual instance).
// An empty want means the caller isn't asserting an instance, so any
// got is accepted.
func variationsMatch(want, got []font.VariationAxis) bool {
	if len(want) == 0 {
		return true
	}
	if len(want) != len(got) {
		return false
	}
	for _, w := range want {
		found := false
		for _, g := range got {
			if g.Tag == w.Tag && g.Value == w.Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *BitmapRenderer) RenderGlyph(gid font.GlyphID, face *font.Face, params Params) (*Output, error) {
	if face == nil {
		return nil, ErrNilFace
	}
	run := &shaping.Run{Glyphs: []shaping.Glyph{{GID: gid}}}
	return r.Render(run, face, params)
}

func (r *BitmapRenderer) glyphOutlines(run *shaping.Run, face *font.Face, params Params, start time.Time) ([]PathGlyph, error) {
	ppem := face.PPEM(params.ppemScale())
	handle := face.Handle()

	penX, penY := params.OriginX, params.OriginY
	out := make([]PathGlyph, 0, len(run.Glyphs))
	for _, g := range run.Glyphs {
		if budgetExceeded(params, start) {
			return nil, ErrTimeout
		}
		xf := font.Translate(float32(penX+g.XOffset), float32(penY+g.YOffset)).Multiply(params.Transform)

		if layers, kind, ok := resolveColorLayers(r.Color, g.GID, r.Pref, params.Color); ok {
			for _, l := range layers {
				outline, err := handle.Outline(l.GID, ppem)
				if err != nil {
					continue
				}
				out = append(out, PathGlyph{
					GID:     l.GID,
					Outline: outline.Transform(xf),
					Color:   l.Color,
					Source:  kind,
				})
			}
			penX += g.XAdvance
			penY += g.YAdvance
			continue
		}

		outline, err := handle.Outline(g.GID, ppem)
		if err != nil {
			penX += g.XAdvance
			penY += g.YAdvance
			continue
		}
		out = append(out, PathGlyph{
			GID:     g.GID,
			Outline: outline.Transform(xf),
			Color:   params.Color,
			Source:  glyphsource.GlyfOutline,
		})
		penX += g.XAdvance
		penY += g.YAdvance
	}
	if len(out) == 0 {
		return nil, ErrMissingGlyph
	}
	return out, nil
}

func (r *BitmapRenderer) renderBitmap(run *shaping.Run, face *font.Face, params Params, start time.Time) (*Output, error) {
	glyphs, err := r.glyphOutlines(run, face, params, start)
	if err != nil {
		return nil, err
	}

	bitmap := &Bitmap{Width: params.Width, Height: params.Height, Pix: make([]Color, params.Width*params.Height)}
	if params.Background.A != 0 {
		for i := range bitmap.Pix {
			bitmap.Pix[i] = params.Background
		}
	}
	width, height := params.Width, params.Height
	rowR := make([]float32, width)
	rowG := make([]float32, width)
	rowB := make([]float32, width)
	rowA := make([]float32, width)
	for _, pg := range glyphs {
		if pg.Outline.IsEmpty() {
			continue
		}
		edges := flattenOutline(pg.Outline, font.Identity())
		coverage := fillCoverage(edges, width, height)
		srcR, srcG, srcB, srcA := float32(pg.Color.R), float32(pg.Color.G), float32(pg.Color.B), float32(pg.Color.A)

		for y := 0; y < height; y++ {
			if budgetExceeded(params, start) {
				return nil, ErrTimeout
			}
			rowCoverage := coverage[y*width : (y+1)*width]
			if !anyPositive(rowCoverage) {
				continue
			}
			rowStart := y * width
			for x := 0; x < width; x++ {
				px := bitmap.Pix[rowStart+x]
				rowR[x], rowG[x], rowB[x], rowA[x] = float32(px.R), float32(px.G), float32(px.B), float32(px.A)
			}
			simd.BlendCoverageSpan(srcR, srcG, srcB, srcA, rowCoverage, rowR, rowG, rowB, rowA)
			for x := 0; x < width; x++ {
				bitmap.Pix[rowStart+x] = Color{R: float64(rowR[x]), G: float64(rowG[x]), B: float64(rowB[x]), A: float64(rowA[x])}
			}
		}
	}
	return &Output{Format: OutputBitmap, Bitmap: bitmap}, nil
}

func anyPositive(coverage []float32) bool {
	for _, c := range coverage {
		if c > 0 {
			return true
		}
	}
	return false
}

func (r *BitmapRenderer) renderPaths(run *shaping.Run, face *font.Face, params Params, start time.Time) (*Output, error) {
	glyphs, err := r.glyphOutlines(run, face, params, start)
	if err != nil {
		return nil, err
	}
	return &Output{Format: OutputPath, Paths: glyphs}, nil
}

func (r *BitmapRenderer) renderStructured(run *shaping.Run, face *font.Face, params Params, start time.Time) (*Output, error) {
	penX, penY := params.OriginX, params.OriginY
	structured := make([]StructuredGlyph, 0, len(run.Glyphs))
	for _, g := range run.Glyphs {
		if budgetExceeded(params, start) {
			return nil, ErrTimeout
		}
		source := glyphsource.GlyfOutline.String()
		if _, kind, ok := resolveColorLayers(r.Color, g.GID, r.Pref, params.Color); ok {
			source = kind.String()
		}
		structured = append(structured, StructuredGlyph{
			GlyphID:  g.GID,
			Cluster:  g.Cluster,
			XAdvance: g.XAdvance,
			YAdvance: g.YAdvance,
			XOffset:  penX + g.XOffset,
			YOffset:  penY + g.YOffset,
			Color:    params.Color,
			Source:   source,
		})
		penX += g.XAdvance
		penY += g.YAdvance
	}
	metrics := Metrics{Advance: run.Advance, Ascent: run.Ascent, Descent: run.Descent}
	return &Output{Format: OutputStructured, Structured: structured, Metrics: metrics}, nil
}
