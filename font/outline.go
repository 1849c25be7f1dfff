package font

// OutlinePoint is a single 2D point in scaled (pixel) units.
type OutlinePoint struct {
	X, Y float32
}

// OutlineOp is a path segment operator.
type OutlineOp uint8

const (
	OutlineOpMoveTo OutlineOp = iota
	OutlineOpLineTo
	OutlineOpQuadTo
	OutlineOpCubicTo
)

func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// OutlineSegment is one path command. Points holds control points
// followed by the end point; which slots are meaningful depends on Op.
type OutlineSegment struct {
	Op     OutlineOp
	Points [3]OutlinePoint
}

// activePoints returns the Points slots actually used by Op.
func (s OutlineSegment) activePoints() []OutlinePoint {
	switch s.Op {
	case OutlineOpMoveTo, OutlineOpLineTo:
		return s.Points[:1]
	case OutlineOpQuadTo:
		return s.Points[:2]
	case OutlineOpCubicTo:
		return s.Points[:3]
	default:
		return nil
	}
}

// GlyphOutline is the vector outline of a single glyph: a sequence of
// closed contours expressed as MoveTo/LineTo/QuadTo/CubicTo segments,
// in the 26.6-derived pixel space of the ppem it was extracted at.
type GlyphOutline struct {
	GID      GlyphID
	Segments []OutlineSegment
	Bounds   Rect
	Advance  float32
}

func (o *GlyphOutline) IsEmpty() bool { return o == nil || len(o.Segments) == 0 }

// Transform returns a new outline with every point passed through m.
func (o *GlyphOutline) Transform(m AffineTransform) *GlyphOutline {
	if o == nil {
		return nil
	}
	out := &GlyphOutline{GID: o.GID, Advance: o.Advance, Segments: make([]OutlineSegment, len(o.Segments))}
	var bounds Rect
	for i, seg := range o.Segments {
		out.Segments[i].Op = seg.Op
		for j, p := range seg.Points {
			x, y := m.Apply(p.X, p.Y)
			out.Segments[i].Points[j] = OutlinePoint{X: x, Y: y}
		}
		for _, p := range out.Segments[i].activePoints() {
			bounds = bounds.Union(Rect{MinX: float64(p.X), MinY: float64(p.Y), MaxX: float64(p.X), MaxY: float64(p.Y)})
		}
	}
	out.Bounds = bounds
	return out
}

// AffineTransform is a 2D affine transform:
//
//	[A B Tx]
//	[C D Ty]
//	[0 0 1 ]
type AffineTransform struct {
	A, B, C, D float32
	Tx, Ty     float32
}

func Identity() AffineTransform { return AffineTransform{A: 1, D: 1} }

func Scale(sx, sy float32) AffineTransform { return AffineTransform{A: sx, D: sy} }

func Translate(tx, ty float32) AffineTransform {
	return AffineTransform{A: 1, D: 1, Tx: tx, Ty: ty}
}

func (m AffineTransform) Apply(x, y float32) (float32, float32) {
	return m.A*x + m.B*y + m.Tx, m.C*x + m.D*y + m.Ty
}

func (m AffineTransform) Multiply(o AffineTransform) AffineTransform {
	return AffineTransform{
		A:  m.A*o.A + m.B*o.C,
		B:  m.A*o.B + m.B*o.D,
		C:  m.C*o.A + m.D*o.C,
		D:  m.C*o.B + m.D*o.D,
		Tx: m.A*o.Tx + m.B*o.Ty + m.Tx,
		Ty: m.C*o.Tx + m.D*o.Ty + m.Ty,
	}
}
