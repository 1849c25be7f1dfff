package emoji

import (
	"encoding/binary"
	"errors"

	"github.com/fontlaborg/typf/font"
)

// COLR/CPAL table format errors.
var (
	ErrNoCOLRTable            = errors.New("emoji: font has no COLR table")
	ErrNoCPALTable            = errors.New("emoji: font has no CPAL table")
	ErrInvalidCOLRData        = errors.New("emoji: invalid COLR table data")
	ErrInvalidCPALData        = errors.New("emoji: invalid CPAL table data")
	ErrGlyphNotInCOLR         = errors.New("emoji: glyph not found in COLR table")
	ErrUnsupportedCOLRVersion = errors.New("emoji: unsupported COLR table version")
	// ErrUnsupportedPaint is returned for a COLRv1 paint graph this
	// parser does not walk (anything beyond a flat PaintColrLayers of
	// PaintGlyph/PaintSolid leaves — gradients and transforms are not
	// extracted).
	ErrUnsupportedPaint = errors.New("emoji: unsupported COLRv1 paint operation")
)

// Color is an RGBA palette entry.
type Color struct {
	R, G, B, A uint8
}

// ColorLayer is one layer of a color glyph: a glyph index to render,
// painted in a palette color (or the caller's foreground color when
// PaletteIndex is 0xFFFF).
type ColorLayer struct {
	GlyphID      font.GlyphID
	PaletteIndex uint16
	Color        Color
}

// IsForeground reports whether this layer should use the caller's
// foreground (text) color rather than a palette entry.
func (l ColorLayer) IsForeground() bool { return l.PaletteIndex == 0xFFFF }

// ColorGlyph is a color glyph assembled from COLR layers, bottom to
// top.
type ColorGlyph struct {
	GlyphID font.GlyphID
	Layers  []ColorLayer
	Version uint16
}

type baseGlyphRecordV0 struct {
	glyphID    uint16
	firstLayer uint16
	numLayers  uint16
}

type layerRecordV0 struct {
	glyphID      uint16
	paletteIndex uint16
}

// baseGlyphPaintRecordV1 is COLRv1's BaseGlyphList entry: a base glyph
// and an offset (from the BaseGlyphList start) to its paint table.
type baseGlyphPaintRecordV1 struct {
	glyphID     uint16
	paintOffset uint32
}

// ColorTable parses the COLR and CPAL tables of one font.
type ColorTable struct {
	version uint16

	// v0
	baseGlyphsV0 []baseGlyphRecordV0
	layersV0     []layerRecordV0

	// v1
	colrData         []byte
	baseGlyphListOff uint32
	layerListOff     uint32
	basePaintsV1     []baseGlyphPaintRecordV1

	palettes [][]Color
}

// ParseColorTable parses colrData/cpalData into a ColorTable. Both
// COLRv0's flat base-glyph/layer records and COLRv1's BaseGlyphList
// are understood, though COLRv1 paint extraction (see GetGlyphV1) only
// walks the common PaintColrLayers-of-PaintGlyph/PaintSolid shape.
func ParseColorTable(colrData, cpalData []byte) (*ColorTable, error) {
	if len(colrData) == 0 {
		return nil, ErrNoCOLRTable
	}
	if len(cpalData) == 0 {
		return nil, ErrNoCPALTable
	}
	if len(colrData) < 14 {
		return nil, ErrInvalidCOLRData
	}

	t := &ColorTable{colrData: colrData}
	t.version = binary.BigEndian.Uint16(colrData[0:2])
	if t.version > 1 {
		return nil, ErrUnsupportedCOLRVersion
	}

	numBaseGlyphs := binary.BigEndian.Uint16(colrData[2:4])
	baseGlyphOffset := binary.BigEndian.Uint32(colrData[4:8])
	layerRecordOffset := binary.BigEndian.Uint32(colrData[8:12])
	numLayers := binary.BigEndian.Uint16(colrData[12:14])

	if err := t.parseBaseGlyphsV0(numBaseGlyphs, baseGlyphOffset); err != nil {
		return nil, err
	}
	if err := t.parseLayersV0(layerRecordOffset, numLayers); err != nil {
		return nil, err
	}

	if t.version == 1 {
		if len(colrData) < 14+4+4+4+4+4+4 {
			return nil, ErrInvalidCOLRData
		}
		t.baseGlyphListOff = binary.BigEndian.Uint32(colrData[14:18])
		t.layerListOff = binary.BigEndian.Uint32(colrData[18:22])
		if err := t.parseBaseGlyphListV1(); err != nil {
			return nil, err
		}
	}

	if err := t.parseCPAL(cpalData); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *ColorTable) parseBaseGlyphsV0(n uint16, offset uint32) error {
	const recordSize = 6
	data := t.colrData
	for i := uint16(0); i < n; i++ {
		pos := int(offset) + int(i)*recordSize
		if pos+recordSize > len(data) {
			return ErrInvalidCOLRData
		}
		t.baseGlyphsV0 = append(t.baseGlyphsV0, baseGlyphRecordV0{
			glyphID:    binary.BigEndian.Uint16(data[pos : pos+2]),
			firstLayer: binary.BigEndian.Uint16(data[pos+2 : pos+4]),
			numLayers:  binary.BigEndian.Uint16(data[pos+4 : pos+6]),
		})
	}
	return nil
}

func (t *ColorTable) parseLayersV0(offset uint32, n uint16) error {
	const recordSize = 4
	data := t.colrData
	for i := uint16(0); i < n; i++ {
		pos := int(offset) + int(i)*recordSize
		if pos+recordSize > len(data) {
			return ErrInvalidCOLRData
		}
		t.layersV0 = append(t.layersV0, layerRecordV0{
			glyphID:      binary.BigEndian.Uint16(data[pos : pos+2]),
			paletteIndex: binary.BigEndian.Uint16(data[pos+2 : pos+4]),
		})
	}
	return nil
}

// parseBaseGlyphListV1 reads COLRv1's BaseGlyphList: a uint32 count
// followed by that many (glyphID uint16, paintOffset uint32) records,
// offsets relative to the BaseGlyphList's own start.
func (t *ColorTable) parseBaseGlyphListV1() error {
	data := t.colrData
	off := int(t.baseGlyphListOff)
	if off+4 > len(data) {
		return ErrInvalidCOLRData
	}
	count := binary.BigEndian.Uint32(data[off : off+4])
	const recordSize = 6
	for i := uint32(0); i < count; i++ {
		pos := off + 4 + int(i)*recordSize
		if pos+recordSize > len(data) {
			return ErrInvalidCOLRData
		}
		t.basePaintsV1 = append(t.basePaintsV1, baseGlyphPaintRecordV1{
			glyphID:     binary.BigEndian.Uint16(data[pos : pos+2]),
			paintOffset: binary.BigEndian.Uint32(data[pos+2 : pos+6]),
		})
	}
	return nil
}

func (t *ColorTable) parseCPAL(data []byte) error {
	if len(data) < 12 {
		return ErrInvalidCPALData
	}
	numEntries := binary.BigEndian.Uint16(data[2:4])
	numPalettes := binary.BigEndian.Uint16(data[4:6])
	colorRecordsOffset := binary.BigEndian.Uint32(data[8:12])

	if 12+int(numPalettes)*2 > len(data) {
		return ErrInvalidCPALData
	}
	paletteOffsets := make([]uint16, numPalettes)
	for i := uint16(0); i < numPalettes; i++ {
		pos := 12 + int(i)*2
		paletteOffsets[i] = binary.BigEndian.Uint16(data[pos : pos+2])
	}

	t.palettes = make([][]Color, numPalettes)
	for i := uint16(0); i < numPalettes; i++ {
		palette := make([]Color, numEntries)
		for j := uint16(0); j < numEntries; j++ {
			colorIndex := paletteOffsets[i] + j
			pos := int(colorRecordsOffset) + int(colorIndex)*4
			if pos+4 > len(data) {
				return ErrInvalidCPALData
			}
			// CPAL stores color records as BGRA.
			palette[j] = Color{B: data[pos], G: data[pos+1], R: data[pos+2], A: data[pos+3]}
		}
		t.palettes[i] = palette
	}
	return nil
}

// Version reports the COLR table version (0 or 1) this font uses.
func (t *ColorTable) Version() uint16 { return t.version }

// HasGlyphV0 reports whether gid has COLRv0 base-glyph layers.
func (t *ColorTable) HasGlyphV0(gid font.GlyphID) bool {
	_, found := t.findBaseGlyphV0(uint16(gid))
	return found
}

// HasGlyphV1 reports whether gid has a COLRv1 BaseGlyphList entry.
func (t *ColorTable) HasGlyphV1(gid font.GlyphID) bool {
	_, found := t.findBasePaintV1(uint16(gid))
	return found
}

func (t *ColorTable) findBaseGlyphV0(gid uint16) (baseGlyphRecordV0, bool) {
	lo, hi := 0, len(t.baseGlyphsV0)
	for lo < hi {
		mid := (lo + hi) / 2
		if t.baseGlyphsV0[mid].glyphID < gid {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(t.baseGlyphsV0) && t.baseGlyphsV0[lo].glyphID == gid {
		return t.baseGlyphsV0[lo], true
	}
	return baseGlyphRecordV0{}, false
}

func (t *ColorTable) findBasePaintV1(gid uint16) (baseGlyphPaintRecordV1, bool) {
	for _, r := range t.basePaintsV1 {
		if r.glyphID == gid {
			return r, true
		}
	}
	return baseGlyphPaintRecordV1{}, false
}

// GetGlyphV0 assembles a ColorGlyph from COLRv0's flat layer records.
func (t *ColorTable) GetGlyphV0(gid font.GlyphID, paletteIndex int) (*ColorGlyph, error) {
	record, found := t.findBaseGlyphV0(uint16(gid))
	if !found {
		return nil, ErrGlyphNotInCOLR
	}

	glyph := &ColorGlyph{GlyphID: gid, Layers: make([]ColorLayer, record.numLayers), Version: 0}
	for i := uint16(0); i < record.numLayers; i++ {
		idx := record.firstLayer + i
		if int(idx) >= len(t.layersV0) {
			return nil, ErrInvalidCOLRData
		}
		l := t.layersV0[idx]
		layer := ColorLayer{GlyphID: font.GlyphID(l.glyphID), PaletteIndex: l.paletteIndex}
		if !layer.IsForeground() && paletteIndex < len(t.palettes) && int(l.paletteIndex) < len(t.palettes[paletteIndex]) {
			layer.Color = t.palettes[paletteIndex][l.paletteIndex]
		}
		glyph.Layers[i] = layer
	}
	return glyph, nil
}

// GetGlyphV1 walks a COLRv1 paint table for gid. Only the common
// PaintColrLayers-of-(PaintGlyph wrapping PaintSolid) shape used by
// most color-emoji fonts in practice is extracted; a paint graph using
// gradients, transforms, or composite modes returns ErrUnsupportedPaint
// rather than silently producing wrong colors.
func (t *ColorTable) GetGlyphV1(gid font.GlyphID, paletteIndex int) (*ColorGlyph, error) {
	record, found := t.findBasePaintV1(uint16(gid))
	if !found {
		return nil, ErrGlyphNotInCOLR
	}

	data := t.colrData
	pos := int(t.baseGlyphListOff) + int(record.paintOffset)
	if pos >= len(data) {
		return nil, ErrInvalidCOLRData
	}

	layers, err := t.walkPaintV1(pos, paletteIndex)
	if err != nil {
		return nil, err
	}
	return &ColorGlyph{GlyphID: gid, Layers: layers, Version: 1}, nil
}

// COLRv1 paint format numbers relevant to the flat shape this parser
// supports (OpenType spec §"BaseGlyphPaintRecord").
const (
	paintFormatColrLayers = 1
	paintFormatSolid      = 2
	paintFormatGlyph      = 10
)

func (t *ColorTable) walkPaintV1(pos int, paletteIndex int) ([]ColorLayer, error) {
	data := t.colrData
	if pos+1 > len(data) {
		return nil, ErrInvalidCOLRData
	}
	format := data[pos]

	switch format {
	case paintFormatColrLayers:
		// uint8 format, uint8 numLayers, uint32 firstLayerIndex
		if pos+6 > len(data) {
			return nil, ErrInvalidCOLRData
		}
		numLayersU := uint32(data[pos+1])
		firstLayerIndex := binary.BigEndian.Uint32(data[pos+2 : pos+6])

		var out []ColorLayer
		layerOff := int(t.layerListOff)
		if layerOff+4 > len(data) {
			return nil, ErrInvalidCOLRData
		}
		for i := uint32(0); i < numLayersU; i++ {
			idx := firstLayerIndex + i
			offPos := layerOff + 4 + int(idx)*4
			if offPos+4 > len(data) {
				return nil, ErrInvalidCOLRData
			}
			childOffset := binary.BigEndian.Uint32(data[offPos : offPos+4])
			childLayers, err := t.walkPaintV1(layerOff+int(childOffset), paletteIndex)
			if err != nil {
				return nil, err
			}
			out = append(out, childLayers...)
		}
		return out, nil

	case paintFormatGlyph:
		// uint8 format, Offset24 paintOffset, uint16 glyphID
		if pos+6 > len(data) {
			return nil, ErrInvalidCOLRData
		}
		childPaintOffset := uint32(data[pos+1])<<16 | uint32(data[pos+2])<<8 | uint32(data[pos+3])
		gid := binary.BigEndian.Uint16(data[pos+4 : pos+6])
		childLayers, err := t.walkPaintV1(pos+int(childPaintOffset), paletteIndex)
		if err != nil {
			return nil, err
		}
		if len(childLayers) == 1 {
			childLayers[0].GlyphID = font.GlyphID(gid)
			return childLayers, nil
		}
		return []ColorLayer{{GlyphID: font.GlyphID(gid)}}, nil

	case paintFormatSolid:
		if pos+5 > len(data) {
			return nil, ErrInvalidCOLRData
		}
		paletteEntryIndex := binary.BigEndian.Uint16(data[pos+1 : pos+3])
		layer := ColorLayer{PaletteIndex: paletteEntryIndex}
		if paletteEntryIndex != 0xFFFF && paletteIndex < len(t.palettes) && int(paletteEntryIndex) < len(t.palettes[paletteIndex]) {
			layer.Color = t.palettes[paletteIndex][paletteEntryIndex]
		}
		return []ColorLayer{layer}, nil

	default:
		return nil, ErrUnsupportedPaint
	}
}

// PaletteColors returns the resolved colors of one CPAL palette.
func (t *ColorTable) PaletteColors(paletteIndex int) []Color {
	if paletteIndex < 0 || paletteIndex >= len(t.palettes) {
		return nil
	}
	return t.palettes[paletteIndex]
}
