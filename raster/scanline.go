package raster

import (
	"math"
	"sort"

	"github.com/fontlaborg/typf/font"
)

// edge is a monotonic-in-y line segment produced by flattening an
// outline's curves, carrying the winding direction of its original
// segment so non-zero fill can be evaluated.
type edge struct {
	x0, y0, x1, y1 float64
	dir            int
}

func newEdge(x0, y0, x1, y1 float64) edge {
	dir := 1
	if y0 > y1 {
		dir = -1
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	return edge{x0: x0, y0: y0, x1: x1, y1: y1, dir: dir}
}

func (e edge) xAtY(y float64) float64 {
	if e.y1 == e.y0 {
		return e.x0
	}
	t := (y - e.y0) / (e.y1 - e.y0)
	return e.x0 + (e.x1-e.x0)*t
}

// sampleRows is the number of vertical subsamples per pixel row used
// by the coverage rasterizer. 4 subsamples give visually smooth text
// at typical glyph sizes without the cost of a full analytic-area
// solver.
const sampleRows = 4

// flattenOutline converts an outline's quad/cubic segments into a
// flat list of line-segment edges, subdividing curves into a fixed
// number of line segments; that's precise enough at the pixel scales
// glyph outlines render at, and avoids adaptive-subdivision
// complexity the coverage rasterizer doesn't need.
func flattenOutline(o *font.GlyphOutline, xf font.AffineTransform) []edge {
	var edges []edge
	var startX, startY, curX, curY float32
	haveStart := false

	emit := func(x0, y0, x1, y1 float32) {
		edges = append(edges, newEdge(float64(x0), float64(y0), float64(x1), float64(y1)))
	}

	for _, seg := range o.Segments {
		switch seg.Op {
		case font.OutlineOpMoveTo:
			if haveStart && (curX != startX || curY != startY) {
				emit(curX, curY, startX, startY)
			}
			p := apply(xf, seg.Points[0])
			startX, startY = p.X, p.Y
			curX, curY = p.X, p.Y
			haveStart = true
		case font.OutlineOpLineTo:
			p := apply(xf, seg.Points[0])
			emit(curX, curY, p.X, p.Y)
			curX, curY = p.X, p.Y
		case font.OutlineOpQuadTo:
			c := apply(xf, seg.Points[0])
			p := apply(xf, seg.Points[1])
			flattenQuad(curX, curY, c.X, c.Y, p.X, p.Y, emit)
			curX, curY = p.X, p.Y
		case font.OutlineOpCubicTo:
			c1 := apply(xf, seg.Points[0])
			c2 := apply(xf, seg.Points[1])
			p := apply(xf, seg.Points[2])
			flattenCubic(curX, curY, c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y, emit)
			curX, curY = p.X, p.Y
		}
	}
	if haveStart && (curX != startX || curY != startY) {
		emit(curX, curY, startX, startY)
	}
	return edges
}

func apply(xf font.AffineTransform, p font.OutlinePoint) font.OutlinePoint {
	x, y := xf.Apply(p.X, p.Y)
	return font.OutlinePoint{X: x, Y: y}
}

const curveSteps = 8

func flattenQuad(x0, y0, cx, cy, x1, y1 float32, emit func(x0, y0, x1, y1 float32)) {
	px, py := x0, y0
	for i := 1; i <= curveSteps; i++ {
		t := float32(i) / curveSteps
		mt := 1 - t
		x := mt*mt*x0 + 2*mt*t*cx + t*t*x1
		y := mt*mt*y0 + 2*mt*t*cy + t*t*y1
		emit(px, py, x, y)
		px, py = x, y
	}
}

func flattenCubic(x0, y0, c1x, c1y, c2x, c2y, x1, y1 float32, emit func(x0, y0, x1, y1 float32)) {
	px, py := x0, y0
	for i := 1; i <= curveSteps; i++ {
		t := float32(i) / curveSteps
		mt := 1 - t
		x := mt*mt*mt*x0 + 3*mt*mt*t*c1x + 3*mt*t*t*c2x + t*t*t*x1
		y := mt*mt*mt*y0 + 3*mt*mt*t*c1y + 3*mt*t*t*c2y + t*t*t*y1
		emit(px, py, x, y)
		px, py = x, y
	}
}

// fillCoverage rasterizes edges into a width*height coverage buffer
// (values in [0, 1]) using non-zero winding, supersampled sampleRows
// times per row and averaged down to one coverage value per pixel.
func fillCoverage(edges []edge, width, height int) []float32 {
	coverage := make([]float32, width*height)
	if len(edges) == 0 {
		return coverage
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].y0 < edges[j].y0 })

	rowCoverage := make([]float32, width)
	for y := 0; y < height; y++ {
		for i := range rowCoverage {
			rowCoverage[i] = 0
		}
		for s := 0; s < sampleRows; s++ {
			sampleY := float64(y) + (float64(s)+0.5)/sampleRows
			accumulateScanline(edges, sampleY, width, rowCoverage, 1.0/sampleRows)
		}
		copy(coverage[y*width:(y+1)*width], rowCoverage)
	}
	return coverage
}

// accumulateScanline finds the x-intersections of edges crossing y,
// sorts them, and adds weight to every pixel inside a non-zero
// winding span, splitting partial coverage at the span's fractional
// boundaries.
func accumulateScanline(edges []edge, y float64, width int, row []float32, weight float32) {
	type crossing struct {
		x   float64
		dir int
	}
	var xs []crossing
	for _, e := range edges {
		if y < e.y0 || y >= e.y1 {
			continue
		}
		xs = append(xs, crossing{x: e.xAtY(y), dir: e.dir})
	}
	if len(xs) == 0 {
		return
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i].x < xs[j].x })

	winding := 0
	spanStart := 0.0
	inSpan := false
	for i := 0; i < len(xs); i++ {
		was := winding != 0
		winding += xs[i].dir
		is := winding != 0
		if !was && is {
			spanStart = xs[i].x
			inSpan = true
		} else if was && !is && inSpan {
			addSpan(row, width, spanStart, xs[i].x, weight)
			inSpan = false
		}
	}
}

// addSpan adds weight to every pixel whose [n, n+1) interval overlaps
// [x0, x1), scaling by the overlap fraction at the boundary pixels.
func addSpan(row []float32, width int, x0, x1 float64, weight float32) {
	if x1 <= x0 {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > float64(width) {
		x1 = float64(width)
	}
	if x0 >= x1 {
		return
	}

	startPx := int(math.Floor(x0))
	endPx := int(math.Floor(x1 - 1e-9))

	if startPx == endPx {
		row[startPx] += weight * float32(x1-x0)
		return
	}
	row[startPx] += weight * float32(float64(startPx+1)-x0)
	for px := startPx + 1; px < endPx; px++ {
		row[px] += weight
	}
	row[endPx] += weight * float32(x1-float64(endPx))
}
