package raster

import (
	"math"
	"time"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/shaping"
)

// MaxDimension is the largest width or height, in pixels, any
// renderer in this package will allocate for. Callers asking for more
// get ErrInvalidDimensions rather than an unbounded allocation.
const MaxDimension = 10000

// OutputFormat selects the shape of a Renderer's output.
type OutputFormat int

const (
	// OutputBitmap produces an RGBA raster image.
	OutputBitmap OutputFormat = iota
	// OutputPath produces an ordered list of vector glyph outlines.
	OutputPath
	// OutputStructured produces a schema-versioned description of the
	// run: one entry per glyph with its source kind, position, and
	// color, without rasterizing or flattening anything.
	OutputStructured
)

func (f OutputFormat) String() string {
	switch f {
	case OutputBitmap:
		return "bitmap"
	case OutputPath:
		return "path"
	case OutputStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Color is a straight-alpha RGBA color in [0, 1] per channel.
type Color struct {
	R, G, B, A float64
}

// Padding is a four-sided pixel margin applied around a bitmap's
// shaped content, per spec §3's render-parameters bundle. All sides
// must be non-negative.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Params configures a single Render or RenderGlyph call.
type Params struct {
	// Format selects the output shape. Defaults to OutputBitmap.
	Format OutputFormat

	// Transform is applied to every glyph outline before
	// rasterization or path emission, after the shaper's own
	// per-glyph offsets.
	Transform font.AffineTransform

	// Color is the foreground fill color applied to non-color glyph
	// outlines.
	Color Color

	// Background seeds every bitmap pixel before any glyph is
	// composited. The zero value (A == 0) means transparent, matching
	// an absent background per spec §3.
	Background Color

	// Padding reserves a margin on each side of the shaped content.
	// When Width and Height are both zero, Render auto-sizes the
	// bitmap to the run's advance/ascent/descent plus this margin;
	// when either is set explicitly, Padding only shifts the content
	// origin inward and does not resize the canvas.
	Padding Padding

	// DPI is the scale factor converting the face's point size to
	// pixels-per-em, passed straight through to font.Face.PPEM. Zero
	// or negative means the face's unscaled size (1x).
	DPI float64

	// Variations are the variation-axis values this render call
	// expects the font to be instanced at. They must match the axis
	// values the font.Handle was already built with via
	// font.WithVariations — Render rejects a mismatch rather than
	// silently rendering at the wrong instance, since a render call
	// cannot re-instance a Handle after construction.
	Variations []font.VariationAxis

	// Width and Height are the target bitmap dimensions in pixels,
	// used only when Format is OutputBitmap. Both must be in
	// (0, MaxDimension]; leave both zero to auto-size from Padding and
	// the run's metrics.
	Width, Height int

	// OriginX and OriginY place the run's baseline origin within the
	// target bitmap, in pixels.
	OriginX, OriginY float64

	// Budget is an optional soft time budget for this Render call, per
	// spec §5. Zero (the default) means no budget. When set, Render
	// surfaces ErrTimeout at the next checkpoint (between scanlines
	// for bitmap output, between glyph outlines otherwise) once the
	// budget has elapsed, instead of running to completion.
	Budget time.Duration
}

// DefaultParams returns a black, identity-transform, source-over fill
// configuration; callers still need to set Width/Height for bitmap
// output, or leave them zero and set Padding for auto-sizing.
func DefaultParams() Params {
	return Params{
		Format:    OutputBitmap,
		Transform: font.Identity(),
		Color:     Color{A: 1},
		DPI:       1,
	}
}

func (p Params) WithColor(c Color) Params {
	p.Color = c
	return p
}

func (p Params) WithBackground(c Color) Params {
	p.Background = c
	return p
}

func (p Params) WithPadding(top, right, bottom, left float64) Params {
	p.Padding = Padding{Top: top, Right: right, Bottom: bottom, Left: left}
	return p
}

func (p Params) WithDPI(dpi float64) Params {
	p.DPI = dpi
	return p
}

func (p Params) WithVariations(axes ...font.VariationAxis) Params {
	p.Variations = axes
	return p
}

func (p Params) WithTransform(t font.AffineTransform) Params {
	p.Transform = t
	return p
}

func (p Params) WithSize(width, height int) Params {
	p.Width, p.Height = width, height
	return p
}

func (p Params) WithBudget(d time.Duration) Params {
	p.Budget = d
	return p
}

// ppemScale returns the effective DPI scale passed to font.Face.PPEM:
// zero or negative means unscaled (1x), matching PPEM's own default.
func (p Params) ppemScale() float64 {
	if p.DPI <= 0 {
		return 1
	}
	return p.DPI
}

// autoLayout fills in Width, Height, OriginX, and OriginY from run's
// metrics and Padding when the caller left both dimensions at zero,
// so a caller only supplying padding (spec §8 scenario 1) gets a
// canvas sized to exactly contain the shaped content plus margin.
// Explicit Width/Height are left untouched; Padding still nudges the
// origin inward in that case.
func (p Params) autoLayout(run *shaping.Run, dir font.Direction) Params {
	p.OriginX += p.Padding.Left
	p.OriginY += p.Padding.Top
	if p.Format != OutputBitmap || p.Width != 0 || p.Height != 0 {
		return p
	}
	p.Width = int(math.Ceil(run.Width(dir) + p.Padding.Left + p.Padding.Right))
	p.Height = int(math.Ceil(run.Height(dir) + p.Padding.Top + p.Padding.Bottom))
	return p
}

func (p Params) validateDimensions() error {
	if p.Format != OutputBitmap {
		return nil
	}
	if p.Width <= 0 || p.Height <= 0 || p.Width > MaxDimension || p.Height > MaxDimension {
		return ErrInvalidDimensions
	}
	return nil
}

func (p Params) validatePadding() error {
	if p.Padding.Top < 0 || p.Padding.Right < 0 || p.Padding.Bottom < 0 || p.Padding.Left < 0 {
		return ErrInvalidPadding
	}
	return nil
}
