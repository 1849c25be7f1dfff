package emoji

import (
	"encoding/binary"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/glyphsource"
)

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// buildCOLRv0 constructs a minimal COLRv0 table with one base glyph
// (gid 5) made of two layers, plus a one-palette CPAL table.
func buildCOLRv0(t *testing.T) (colr, cpal []byte) {
	t.Helper()

	// COLR header: version, numBaseGlyph, baseGlyphRecordsOffset,
	// layerRecordsOffset, numLayerRecords.
	const headerSize = 14
	const baseRecSize = 6
	const layerRecSize = 4

	baseOff := uint32(headerSize)
	layerOff := baseOff + baseRecSize

	colr = append(colr, u16(0)...)
	colr = append(colr, u16(1)...) // numBaseGlyph
	colr = append(colr, u32(baseOff)...)
	colr = append(colr, u32(layerOff)...)
	colr = append(colr, u16(2)...) // numLayerRecords

	// base glyph record: glyphID=5, firstLayer=0, numLayers=2
	colr = append(colr, u16(5)...)
	colr = append(colr, u16(0)...)
	colr = append(colr, u16(2)...)

	// layer 0: glyph 6, palette entry 0
	colr = append(colr, u16(6)...)
	colr = append(colr, u16(0)...)
	// layer 1: glyph 7, foreground (0xFFFF)
	colr = append(colr, u16(7)...)
	colr = append(colr, u16(0xFFFF)...)

	// CPAL v0: version, numColorRecords(entries per palette),
	// numPalettes, numColorRecordsTotal, offsetToFirstColorRecord,
	// then paletteOffsets[numPalettes], then color records (BGRA).
	cpal = append(cpal, u16(0)...)
	cpal = append(cpal, u16(1)...)       // numEntries per palette
	cpal = append(cpal, u16(1)...)       // numPalettes
	cpal = append(cpal, u16(1)...)       // numColorRecords total
	cpal = append(cpal, u32(16)...)      // colorRecordsOffset (right after 12+2 palette offset bytes, padded to 16)
	cpal = append(cpal, u16(0)...)       // paletteOffsets[0] = 0
	cpal = append(cpal, 0, 0)            // pad to reach offset 16
	cpal = append(cpal, 10, 20, 30, 255) // BGRA: B=10 G=20 R=30 A=255

	return colr, cpal
}

func TestParseColorTableV0(t *testing.T) {
	colr, cpal := buildCOLRv0(t)

	ct, err := ParseColorTable(colr, cpal)
	if err != nil {
		t.Fatalf("ParseColorTable: %v", err)
	}
	if ct.Version() != 0 {
		t.Fatalf("Version() = %d, want 0", ct.Version())
	}
	if !ct.HasGlyphV0(5) {
		t.Fatal("HasGlyphV0(5) = false, want true")
	}
	if ct.HasGlyphV0(99) {
		t.Fatal("HasGlyphV0(99) = true, want false")
	}

	glyph, err := ct.GetGlyphV0(5, 0)
	if err != nil {
		t.Fatalf("GetGlyphV0: %v", err)
	}
	if len(glyph.Layers) != 2 {
		t.Fatalf("len(Layers) = %d, want 2", len(glyph.Layers))
	}
	if glyph.Layers[0].GlyphID != 6 || glyph.Layers[0].IsForeground() {
		t.Fatalf("layer 0 = %+v, want glyph 6, non-foreground", glyph.Layers[0])
	}
	if glyph.Layers[0].Color != (Color{R: 30, G: 20, B: 10, A: 255}) {
		t.Fatalf("layer 0 color = %+v, want {30 20 10 255}", glyph.Layers[0].Color)
	}
	if !glyph.Layers[1].IsForeground() {
		t.Fatal("layer 1 should be foreground")
	}
}

func TestParseColorTableMissingTables(t *testing.T) {
	if _, err := ParseColorTable(nil, []byte{1}); err != ErrNoCOLRTable {
		t.Fatalf("error = %v, want ErrNoCOLRTable", err)
	}
	if _, err := ParseColorTable([]byte{1}, nil); err != ErrNoCPALTable {
		t.Fatalf("error = %v, want ErrNoCPALTable", err)
	}
}

func buildSbix(t *testing.T) []byte {
	t.Helper()
	// sbix: version=1, flags=0, numStrikes=1, strikeOffset[0]
	var data []byte
	data = append(data, u16(1)...)
	data = append(data, u16(0)...)
	data = append(data, u32(1)...)
	strikeOffset := uint32(8 + 4)
	data = append(data, u32(strikeOffset)...)

	// strike: ppem, ppi, glyphData offsets for numGlyphs+1 = 3 glyphs (0,1,2)
	data = append(data, u16(32)...) // ppem
	data = append(data, u16(72)...) // ppi
	// glyph 0: no data (start==end==0)
	// glyph 1: has data from glyphRecOffset to glyphRecOffset+recordLen
	// glyph 2: end marker
	glyphRecOffset := uint32(4 + 3*4) // relative to strike start: past ppem, ppi and the three offsets
	pngBytes := []byte{0x89, 'P', 'N', 'G'}
	recordLen := uint32(2 + 2 + 4 + len(pngBytes))        // originX,Y + tag + png bytes
	data = append(data, u32(glyphRecOffset)...)           // glyph 0 offset (no data: start == end)
	data = append(data, u32(glyphRecOffset)...)           // glyph 1 offset
	data = append(data, u32(glyphRecOffset+recordLen)...) // glyph 2 offset = end of glyph 1's data

	// glyph 1's actual bitmap record, starting right after the offset array
	data = append(data, u16(0)...) // originX
	data = append(data, u16(0)...) // originY
	data = append(data, []byte("png ")...)
	data = append(data, pngBytes...)

	return data
}

func TestParseSbixTable(t *testing.T) {
	data := buildSbix(t)
	st, err := ParseSbixTable(data, 2)
	if err != nil {
		t.Fatalf("ParseSbixTable: %v", err)
	}
	if st.NumStrikes() != 1 {
		t.Fatalf("NumStrikes() = %d, want 1", st.NumStrikes())
	}
	if st.HasGlyph(0) {
		t.Fatal("glyph 0 should have no sbix data")
	}
	if !st.HasGlyph(1) {
		t.Fatal("glyph 1 should have sbix data")
	}
}

func TestParseSvgTable(t *testing.T) {
	doc := []byte(`<svg></svg>`)

	var data []byte
	data = append(data, u16(0)...) // version
	listOffset := uint32(10)
	data = append(data, u32(listOffset)...)
	data = append(data, u32(0)...) // reserved

	// document list: numEntries=1, record(startGID,endGID,offset,length)
	data = append(data, u16(1)...)
	docOffset := uint32(2 + 12) // relative to list start
	data = append(data, u16(9)...)
	data = append(data, u16(9)...)
	data = append(data, u32(docOffset)...)
	data = append(data, u32(uint32(len(doc)))...)
	data = append(data, doc...)

	svg, err := ParseSvgTable(data)
	if err != nil {
		t.Fatalf("ParseSvgTable: %v", err)
	}
	if !svg.HasGlyph(9) {
		t.Fatal("HasGlyph(9) = false, want true")
	}
	got, err := svg.GetGlyph(9)
	if err != nil {
		t.Fatalf("GetGlyph: %v", err)
	}
	if string(got) != string(doc) {
		t.Fatalf("GetGlyph = %q, want %q", got, doc)
	}
	if svg.HasGlyph(99) {
		t.Fatal("HasGlyph(99) = true, want false")
	}
}

func TestFontHasNoColorTablesOnPlainFont(t *testing.T) {
	handle, err := font.Open(goregular.TTF)
	if err != nil {
		t.Fatalf("font.Open: %v", err)
	}
	t.Cleanup(handle.Release)

	f := NewFont(handle)
	if f.Has(glyphsource.ColorV1, 1) {
		t.Fatal("plain Latin font must not report COLR-v1 availability")
	}
	if f.Has(glyphsource.EmbeddedBitmapSbix, 1) {
		t.Fatal("plain Latin font must not report sbix availability")
	}
	if !f.Has(glyphsource.GlyfOutline, 1) {
		t.Fatal("plain TTF font must report glyf outline availability")
	}
}
