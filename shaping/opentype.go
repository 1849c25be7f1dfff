package shaping

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/go-text/typesetting/di"
	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	gotextshaping "github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/unicodedata"
)

// OpenTypeShaper provides full GSUB/GPOS shaping (ligatures, kerning,
// contextual forms, RTL reordering, complex-script rules) via
// go-text/typesetting's HarfBuzz-equivalent implementation.
//
// A *font.Handle's raw bytes are parsed once into a go-text font.Font
// (safe for concurrent use) and cached; HarfbuzzShaper instances,
// which hold a mutable internal buffer, are pooled since a single
// instance is not safe for concurrent Shape calls.
type OpenTypeShaper struct {
	pool sync.Pool

	mu    sync.RWMutex
	faces map[*font.Handle]*gotextfont.Font
}

func NewOpenTypeShaper() *OpenTypeShaper {
	return &OpenTypeShaper{
		pool:  sync.Pool{New: func() any { return &gotextshaping.HarfbuzzShaper{} }},
		faces: make(map[*font.Handle]*gotextfont.Font),
	}
}

func (s *OpenTypeShaper) SupportsScript(unicodedata.Script) bool { return true }

func (s *OpenTypeShaper) SupportsFeature(tag string) bool {
	switch tag {
	case "liga", "kern", "clig", "calt", "rlig":
		return true
	default:
		return false
	}
}

func (s *OpenTypeShaper) Shape(text string, face *font.Face, params Params) (*Run, error) {
	start := time.Now()
	if face == nil {
		return nil, ErrNilFace
	}
	handle := face.Handle()
	if text == "" {
		return convertRun(nil, params.Direction, handle.Metrics(params.Size)), nil
	}
	// HarfbuzzShaper.Shape is a single opaque call with no internal
	// checkpoint to interrupt: params.Budget is checked before and after
	// that call, never mid-shape. UnicodePreprocessedShaper adds a
	// per-run checkpoint one level up when it wraps this shaper.
	goFont, err := s.fontFor(handle)
	if err != nil {
		return nil, err
	}
	if params.Budget > 0 && time.Since(start) > params.Budget {
		return nil, ErrTimeout
	}
	goFace := gotextfont.NewFace(goFont)

	runes := []rune(text)
	dir := mapDirection(params.Direction)
	script := detectGoTextScript(runes)

	lang := params.Language
	if lang == "" {
		lang = "en"
	}

	input := gotextshaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      goFace,
		Size:      fixed.Int26_6(params.Size * 64),
		Script:    script,
		Language:  language.NewLanguage(lang),
	}

	hb, _ := s.pool.Get().(*gotextshaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)
	if params.Budget > 0 && time.Since(start) > params.Budget {
		return nil, ErrTimeout
	}

	metrics := handle.Metrics(params.Size)
	run := convertRun(output.Glyphs, params.Direction, metrics)
	// TextIndex is an index into runes; Glyph.Cluster is a byte offset
	// into text.
	byteOffsets := make([]int, 0, len(runes))
	for i := range text {
		byteOffsets = append(byteOffsets, i)
	}
	for i := range run.Glyphs {
		if c := run.Glyphs[i].Cluster; c >= 0 && c < len(byteOffsets) {
			run.Glyphs[i].Cluster = byteOffsets[c]
		}
	}
	return run, nil
}

// ShapeGlyph does not run GSUB/GPOS: a context of one glyph has no
// adjacent glyph for a contextual rule to apply against, so this is
// the same direct metrics lookup every shaper uses for an isolated
// glyph.
func (s *OpenTypeShaper) ShapeGlyph(gid font.GlyphID, face *font.Face, params Params) (*Run, error) {
	return shapeGlyphDirect(face, gid, params)
}

func (s *OpenTypeShaper) fontFor(h *font.Handle) (*gotextfont.Font, error) {
	s.mu.RLock()
	if f, ok := s.faces[h]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.faces[h]; ok {
		return f, nil
	}

	parsed, err := gotextfont.ParseTTF(bytes.NewReader(h.Bytes()))
	if err != nil {
		return nil, &font.ParseError{Err: fmt.Errorf("opentype shaper: %w", err)}
	}
	s.faces[h] = parsed.Font
	return parsed.Font, nil
}

func mapDirection(d font.Direction) di.Direction {
	switch d {
	case font.DirectionRTL:
		return di.DirectionRTL
	case font.DirectionTTB:
		return di.DirectionTTB
	case font.DirectionBTT:
		return di.DirectionBTT
	default:
		return di.DirectionLTR
	}
}

// detectGoTextScript returns go-text's script tag for the first
// non-space rune, and the whole Input is shaped under that script.
// UnicodePreprocessedShaper splits mixed-script text into
// single-script runs before they reach this shaper; a bare
// OpenTypeShaper call receives the text unsplit.
func detectGoTextScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(x fixed.Int26_6) float64 { return float64(x) / 64.0 }

func convertRun(glyphs []gotextshaping.Glyph, dir font.Direction, metrics font.Metrics) *Run {
	out := make([]Glyph, len(glyphs))
	var x, y float64

	for i, g := range glyphs {
		out[i] = Glyph{
			GID:       font.GlyphID(g.GlyphID),
			Cluster:   g.TextIndex(),
			XOffset:   x + fixedToFloat(g.XOffset),
			YOffset:   y + fixedToFloat(g.YOffset),
			Direction: dir,
		}

		adv := fixedToFloat(g.Advance)
		if dir.IsVertical() {
			out[i].YAdvance = adv
			y += adv
		} else {
			out[i].XAdvance = adv
			x += adv
		}
	}

	advance := x
	if dir.IsVertical() {
		advance = y
	}

	return &Run{
		Glyphs:  out,
		Advance: advance,
		Ascent:  metrics.Ascent,
		Descent: -metrics.Descent,
		Bounds:  font.Rect{MinX: 0, MinY: -metrics.Ascent, MaxX: advance, MaxY: -metrics.Descent},
	}
}
