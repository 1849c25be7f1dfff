package shaping

import (
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/unicodedata"
)

func testFace(t *testing.T) *font.Face {
	t.Helper()

	handle, err := font.Open(goregular.TTF)
	if err != nil {
		t.Fatalf("font.Open: %v", err)
	}
	t.Cleanup(handle.Release)

	face, err := font.NewFace(handle, 16.0)
	if err != nil {
		t.Fatalf("font.NewFace: %v", err)
	}
	return face
}

func TestTrivialShaperEmptyText(t *testing.T) {
	face := testFace(t)
	s := &TrivialShaper{}

	run, err := s.Shape("", face, Params{Size: 16})
	if err != nil {
		t.Fatalf("Shape(\"\") error = %v, want nil", err)
	}
	if len(run.Glyphs) != 0 {
		t.Fatalf("len(Glyphs) = %d, want 0", len(run.Glyphs))
	}
	if run.Advance != 0 {
		t.Fatalf("Advance = %v, want 0", run.Advance)
	}
}

func TestTrivialShaperShapeGlyph(t *testing.T) {
	face := testFace(t)
	s := &TrivialShaper{}

	gid := face.Handle().GlyphIndex('H')
	run, err := s.ShapeGlyph(gid, face, Params{Size: 16})
	if err != nil {
		t.Fatalf("ShapeGlyph: %v", err)
	}
	if len(run.Glyphs) != 1 || run.Glyphs[0].GID != gid {
		t.Fatalf("ShapeGlyph produced %+v, want single glyph %v", run.Glyphs, gid)
	}
	if run.Advance <= 0 {
		t.Fatalf("Advance = %v, want > 0", run.Advance)
	}
}

func TestUnicodePreprocessedShaperShapeGlyphDelegates(t *testing.T) {
	face := testFace(t)
	inner := &TrivialShaper{}
	s := NewUnicodePreprocessedShaper(inner)

	gid := face.Handle().GlyphIndex('H')
	run, err := s.ShapeGlyph(gid, face, Params{Size: 16})
	if err != nil {
		t.Fatalf("ShapeGlyph: %v", err)
	}
	if len(run.Glyphs) != 1 || run.Glyphs[0].GID != gid {
		t.Fatalf("ShapeGlyph produced %+v, want single glyph %v", run.Glyphs, gid)
	}
}

func TestTrivialShaperNilFace(t *testing.T) {
	s := &TrivialShaper{}
	if _, err := s.Shape("x", nil, Params{Size: 16}); err != ErrNilFace {
		t.Fatalf("Shape with nil face error = %v, want ErrNilFace", err)
	}
}

func TestTrivialShaperOneGlyphPerRune(t *testing.T) {
	face := testFace(t)
	s := &TrivialShaper{}

	run, err := s.Shape("Hello", face, Params{Size: 16})
	if err != nil {
		t.Fatalf("Shape: %v", err)
	}
	if len(run.Glyphs) != 5 {
		t.Fatalf("len(Glyphs) = %d, want 5", len(run.Glyphs))
	}
	if run.Advance <= 0 {
		t.Fatalf("Advance = %v, want > 0", run.Advance)
	}

	// advances must monotonically place glyphs left to right
	var lastX float64
	var cursor float64
	for i, g := range run.Glyphs {
		if cursor < lastX {
			t.Fatalf("glyph %d placed before previous glyph", i)
		}
		lastX = cursor
		cursor += g.XAdvance
	}
}

func TestTrivialShaperSurfacesTimeoutWhenBudgetElapsed(t *testing.T) {
	face := testFace(t)
	s := &TrivialShaper{}

	_, err := s.Shape("Hello, world", face, Params{Size: 16, Budget: time.Nanosecond})
	if err != ErrTimeout {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestTrivialShaperCapabilitiesDefaultFalse(t *testing.T) {
	s := &TrivialShaper{}
	if s.SupportsScript(unicodedata.ScriptLatin) {
		t.Fatal("TrivialShaper must not advertise script support")
	}
	if s.SupportsFeature("liga") {
		t.Fatal("TrivialShaper must not advertise feature support")
	}
}

func TestParamsFingerprintDeterministic(t *testing.T) {
	p1 := Params{
		Size: 12, Direction: font.DirectionLTR, Script: unicodedata.ScriptLatin,
		Language: "en", Features: []string{"kern", "liga"},
	}
	p2 := Params{
		Size: 12, Direction: font.DirectionLTR, Script: unicodedata.ScriptLatin,
		Language: "en", Features: []string{"liga", "kern"},
	}

	fp1, fp2 := p1.Fingerprint(), p2.Fingerprint()
	if string(fp1) != string(fp2) {
		t.Fatal("Fingerprint must be independent of Features order")
	}
}

func TestParamsFingerprintDiffersOnSize(t *testing.T) {
	p1 := Params{Size: 12, Script: unicodedata.ScriptLatin}
	p2 := Params{Size: 13, Script: unicodedata.ScriptLatin}

	if string(p1.Fingerprint()) == string(p2.Fingerprint()) {
		t.Fatal("Fingerprint must differ when Size differs")
	}
}

func TestParamsHasFeature(t *testing.T) {
	p := Params{Features: []string{"liga", "kern"}}
	if !p.HasFeature("liga") {
		t.Fatal("HasFeature(\"liga\") = false, want true")
	}
	if p.HasFeature("smcp") {
		t.Fatal("HasFeature(\"smcp\") = true, want false")
	}
}

func TestUnicodePreprocessedShaperStitchesRuns(t *testing.T) {
	face := testFace(t)
	inner := &TrivialShaper{}
	s := NewUnicodePreprocessedShaper(inner)

	run, err := s.Shape("hi you", face, Params{Size: 16, Direction: font.DirectionLTR})
	if err != nil {
		t.Fatalf("Shape: %v", err)
	}
	if len(run.Glyphs) != 6 {
		t.Fatalf("len(Glyphs) = %d, want 6", len(run.Glyphs))
	}

	direct, err := inner.Shape("hi you", face, Params{Size: 16, Direction: font.DirectionLTR})
	if err != nil {
		t.Fatalf("direct Shape: %v", err)
	}
	if run.Advance != direct.Advance {
		t.Fatalf("stitched Advance = %v, want %v (single-script text should match direct shaping)", run.Advance, direct.Advance)
	}
}

func TestUnicodePreprocessedShaperDelegatesCapabilities(t *testing.T) {
	inner := NewOpenTypeShaper()
	s := NewUnicodePreprocessedShaper(inner)

	if !s.SupportsScript(unicodedata.ScriptArabic) {
		t.Fatal("expected delegated SupportsScript to report true for OpenTypeShaper")
	}
	if !s.SupportsFeature("liga") {
		t.Fatal("expected delegated SupportsFeature(\"liga\") to report true")
	}
}

func TestNativeShaperUnavailableByDefault(t *testing.T) {
	if _, err := NewNativeShaper(); err != ErrBackendUnavailable {
		t.Fatalf("NewNativeShaper() error = %v, want ErrBackendUnavailable in the default (non-native_shaper) build", err)
	}
}
