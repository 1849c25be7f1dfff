package export

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/raster"
)

func testBitmap() *raster.Bitmap {
	b := &raster.Bitmap{Width: 2, Height: 2, Pix: make([]raster.Color, 4)}
	b.Pix[0] = raster.Color{R: 1, A: 1}
	return b
}

func TestEncodePNGRejectsNilBitmap(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, nil); err != ErrNilBitmap {
		t.Fatalf("err = %v, want ErrNilBitmap", err)
	}
}

func TestEncodePNGProducesDecodableImage(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, testBitmap()); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("decoded bounds = %v, want 2x2", img.Bounds())
	}
}

func TestEncodePPMHeaderAndSize(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePPM(&buf, testBitmap()); err != nil {
		t.Fatalf("EncodePPM: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "P6\n2 2\n255\n") {
		t.Fatalf("unexpected PPM header: %q", out[:min(len(out), 20)])
	}
	pixelBytes := len(out) - len("P6\n2 2\n255\n")
	if pixelBytes != 2*2*3 {
		t.Fatalf("pixel data length = %d, want 12", pixelBytes)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func TestEncodeSVGEmitsPathPerGlyphWith32BitID(t *testing.T) {
	outline := &font.GlyphOutline{
		Segments: []font.OutlineSegment{
			{Op: font.OutlineOpMoveTo, Points: [3]font.OutlinePoint{{X: 0, Y: 0}}},
			{Op: font.OutlineOpLineTo, Points: [3]font.OutlinePoint{{X: 10, Y: 0}}},
			{Op: font.OutlineOpLineTo, Points: [3]font.OutlinePoint{{X: 5, Y: 10}}},
		},
	}
	paths := []raster.PathGlyph{
		{GID: 70000, Outline: outline, Color: raster.Color{R: 1, A: 1}},
	}

	var buf bytes.Buffer
	if err := EncodeSVG(&buf, paths, 20, 20); err != nil {
		t.Fatalf("EncodeSVG: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `id="glyph70000"`) {
		t.Fatalf("SVG output missing 32-bit glyph id: %s", out)
	}
	if !strings.HasPrefix(out, "<svg") {
		t.Fatal("SVG output missing root element")
	}
}

func TestEncodeSVGRejectsEmptyPaths(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSVG(&buf, nil, 10, 10); err != ErrNoPaths {
		t.Fatalf("err = %v, want ErrNoPaths", err)
	}
}

func TestEncodeStructuredIncludesSchemaVersion(t *testing.T) {
	var buf bytes.Buffer
	glyphs := []raster.StructuredGlyph{{GlyphID: 1, XOffset: 0, YOffset: 0}}
	metrics := raster.Metrics{Advance: 10, Ascent: 8, Descent: 2}
	if err := EncodeStructured(&buf, glyphs, metrics); err != nil {
		t.Fatalf("EncodeStructured: %v", err)
	}

	if !strings.Contains(buf.String(), `"schema_version": "1.0"`) {
		t.Fatalf("output missing literal schema_version key: %s", buf.String())
	}

	var doc StructuredDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if doc.SchemaVersion != SchemaVersion {
		t.Fatalf("SchemaVersion = %q, want %q", doc.SchemaVersion, SchemaVersion)
	}
	if len(doc.Glyphs) != 1 {
		t.Fatalf("len(Glyphs) = %d, want 1", len(doc.Glyphs))
	}
	if doc.Metrics != metrics {
		t.Fatalf("Metrics = %+v, want %+v", doc.Metrics, metrics)
	}
}

func TestSupportsReportsKnownFormats(t *testing.T) {
	for _, f := range []Format{FormatPNG, FormatPPM, FormatSVG, FormatStructured} {
		if !Supports(f) {
			t.Fatalf("Supports(%v) = false, want true", f)
		}
	}
}

func TestSupportsRejectsUnknownFormat(t *testing.T) {
	if Supports(Format(99)) {
		t.Fatal("Supports(99) = true, want false")
	}
}

func TestExportDispatchesByFormat(t *testing.T) {
	var buf bytes.Buffer
	out := &raster.Output{Bitmap: testBitmap()}
	if err := Export(&buf, out, FormatPNG); err != nil {
		t.Fatalf("Export PNG: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("exported PNG not decodable: %v", err)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, &raster.Output{}, Format(99)); err != ErrUnsupportedFormat {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}
