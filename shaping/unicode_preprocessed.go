package shaping

import (
	"time"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/unicodedata"
)

// UnicodePreprocessedShaper segments text into direction+script runs
// with package unicodedata before delegating each run to an inner
// Shaper, then stitches the per-run output back into one Run. This is
// what lets OpenTypeShaper (which shapes one script per call) handle
// mixed-script or mixed-direction input without its caller doing the
// segmentation by hand.
type UnicodePreprocessedShaper struct {
	Inner Shaper
}

func NewUnicodePreprocessedShaper(inner Shaper) *UnicodePreprocessedShaper {
	return &UnicodePreprocessedShaper{Inner: inner}
}

func (s *UnicodePreprocessedShaper) SupportsScript(sc unicodedata.Script) bool {
	return s.Inner.SupportsScript(sc)
}

func (s *UnicodePreprocessedShaper) SupportsFeature(tag string) bool {
	return s.Inner.SupportsFeature(tag)
}

func (s *UnicodePreprocessedShaper) Shape(text string, face *font.Face, params Params) (*Run, error) {
	if face == nil {
		return nil, ErrNilFace
	}

	base := unicodedata.DirectionLTR
	if params.Direction == font.DirectionRTL {
		base = unicodedata.DirectionRTL
	}

	runs := unicodedata.Segment(text, base)
	if len(runs) == 0 {
		return &Run{}, nil
	}

	combined := &Run{}
	var penX, penY float64
	start := time.Now()

	for _, ur := range runs {
		if params.Budget > 0 && time.Since(start) > params.Budget {
			return nil, ErrTimeout
		}
		runParams := params
		runParams.Script = ur.Script
		runParams.Direction = runDirection(ur, params.Direction)

		run, err := s.Inner.Shape(ur.Text, face, runParams)
		if err != nil {
			return nil, err
		}

		combined.merge(run, ur.Start, penX, penY)

		if runParams.Direction.IsVertical() {
			penY += run.Advance
		} else {
			penX += run.Advance
		}
	}

	return combined, nil
}

func (s *UnicodePreprocessedShaper) ShapeGlyph(gid font.GlyphID, face *font.Face, params Params) (*Run, error) {
	return s.Inner.ShapeGlyph(gid, face, params)
}

// runDirection keeps the base paragraph direction for vertical
// text (TTB/BTT have no per-run bidi reordering in this pipeline) but
// lets a script run's own bidi level flip LTR/RTL within an otherwise
// LTR paragraph, matching the bidi algorithm's embedding behavior.
func runDirection(ur unicodedata.Run, base font.Direction) font.Direction {
	if base.IsVertical() {
		return base
	}
	if ur.Direction == unicodedata.DirectionRTL {
		return font.DirectionRTL
	}
	return font.DirectionLTR
}
