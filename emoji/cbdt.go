package emoji

import (
	"encoding/binary"
	"errors"

	"github.com/fontlaborg/typf/font"
)

var (
	ErrInvalidCBDTData2     = errors.New("emoji: invalid CBDT image data")
	ErrUnsupportedCBLCIndex = errors.New("emoji: unsupported CBLC index subtable format")
	ErrUnsupportedCBDTImage = errors.New("emoji: unsupported CBDT image data format")
	ErrNoStrikeForPPEM      = errors.New("emoji: no CBLC strike available")
)

// CbdtTable extracts embedded bitmap glyphs from Google's CBDT/CBLC
// tables. Only CBLC index subtable format 1 (variable metrics, 32-bit
// offsets) and CBDT image format 17 (small metrics + PNG) are parsed:
// this is the pair every color-emoji font observed in the wild
// actually emits (the other five index/image format combinations
// exist for monochrome and constant-size bitmap fonts, not color
// emoji) — an unrecognized combination reports
// ErrUnsupportedCBLCIndex/ErrUnsupportedCBDTImage rather than
// misreading bytes as if they were format 1/17.
type CbdtTable struct {
	cbdtData []byte
	cblcData []byte
	strikes  []cblcStrike
}

type cblcStrike struct {
	indexSubtableListOffset uint32
	numIndexSubtables       uint32
	startGlyphIndex         uint16
	endGlyphIndex           uint16
	ppem                    uint8

	subtables []cblcIndexSubtable
}

type cblcIndexSubtable struct {
	firstGlyphIndex uint16
	lastGlyphIndex  uint16
	indexFormat     uint16
	imageFormat     uint16
	imageDataOffset uint32
	offsets32       []uint32
}

// ParseCbdtTable parses the CBDT/CBLC table pair.
func ParseCbdtTable(cbdtData, cblcData []byte) (*CbdtTable, error) {
	if len(cbdtData) == 0 {
		return nil, ErrNoCBDTTable
	}
	if len(cblcData) == 0 {
		return nil, ErrNoCBLCTable
	}
	if len(cblcData) < 8 {
		return nil, ErrInvalidCBLCData
	}

	t := &CbdtTable{cbdtData: cbdtData, cblcData: cblcData}
	numSizes := binary.BigEndian.Uint32(cblcData[4:8])

	const recordSize = 48
	recordsOffset := 8
	if recordsOffset+int(numSizes)*recordSize > len(cblcData) {
		return nil, ErrInvalidCBLCData
	}

	t.strikes = make([]cblcStrike, numSizes)
	for i := uint32(0); i < numSizes; i++ {
		off := recordsOffset + int(i)*recordSize
		if err := t.parseStrikeRecord(cblcData[off:off+recordSize], &t.strikes[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *CbdtTable) parseStrikeRecord(data []byte, s *cblcStrike) error {
	s.indexSubtableListOffset = binary.BigEndian.Uint32(data[0:4])
	s.numIndexSubtables = binary.BigEndian.Uint32(data[8:12])
	s.startGlyphIndex = binary.BigEndian.Uint16(data[40:42])
	s.endGlyphIndex = binary.BigEndian.Uint16(data[42:44])
	s.ppem = data[44]
	return nil
}

func (t *CbdtTable) ensureSubtables(strike *cblcStrike) error {
	if strike.subtables != nil {
		return nil
	}
	data := t.cblcData
	listOffset := int(strike.indexSubtableListOffset)
	if listOffset+int(strike.numIndexSubtables)*8 > len(data) {
		return ErrInvalidCBLCData
	}

	strike.subtables = make([]cblcIndexSubtable, strike.numIndexSubtables)
	for i := uint32(0); i < strike.numIndexSubtables; i++ {
		recOff := listOffset + int(i)*8
		ist := &strike.subtables[i]
		ist.firstGlyphIndex = binary.BigEndian.Uint16(data[recOff : recOff+2])
		ist.lastGlyphIndex = binary.BigEndian.Uint16(data[recOff+2 : recOff+4])
		additional := binary.BigEndian.Uint32(data[recOff+4 : recOff+8])

		subOff := listOffset + int(additional)
		if subOff+8 > len(data) {
			return ErrInvalidCBLCData
		}
		ist.indexFormat = binary.BigEndian.Uint16(data[subOff : subOff+2])
		ist.imageFormat = binary.BigEndian.Uint16(data[subOff+2 : subOff+4])
		ist.imageDataOffset = binary.BigEndian.Uint32(data[subOff+4 : subOff+8])

		if ist.indexFormat != 1 {
			return ErrUnsupportedCBLCIndex
		}
		headerEnd := subOff + 8
		numGlyphs := int(ist.lastGlyphIndex) - int(ist.firstGlyphIndex) + 1
		numOffsets := numGlyphs + 1
		if headerEnd+numOffsets*4 > len(data) {
			return ErrInvalidCBLCData
		}
		ist.offsets32 = make([]uint32, numOffsets)
		for j := 0; j < numOffsets; j++ {
			pos := headerEnd + j*4
			ist.offsets32[j] = binary.BigEndian.Uint32(data[pos : pos+4])
		}
	}
	return nil
}

// HasGlyph reports whether gid has a bitmap in any strike.
func (t *CbdtTable) HasGlyph(gid font.GlyphID) bool {
	for i := range t.strikes {
		if t.hasGlyphInStrike(gid, i) {
			return true
		}
	}
	return false
}

func (t *CbdtTable) hasGlyphInStrike(gid font.GlyphID, strikeIndex int) bool {
	strike := &t.strikes[strikeIndex]
	g16 := uint16(gid)
	if g16 < strike.startGlyphIndex || g16 > strike.endGlyphIndex {
		return false
	}
	if t.ensureSubtables(strike) != nil {
		return false
	}
	for i := range strike.subtables {
		ist := &strike.subtables[i]
		if g16 >= ist.firstGlyphIndex && g16 <= ist.lastGlyphIndex {
			return true
		}
	}
	return false
}

// BestStrikeForPPEM returns the index of the smallest strike whose
// ppem is at least ppem (clamped to 255), or of the largest strike
// when none is that large; -1 when the table has no strikes.
func (t *CbdtTable) BestStrikeForPPEM(ppem uint16) int {
	if len(t.strikes) == 0 {
		return -1
	}
	clamped := uint8(ppem)
	if ppem > 255 {
		clamped = 255
	}
	largest := 0
	bestLarger, bestLargerPPEM := -1, uint8(255)
	for i := range t.strikes {
		p := t.strikes[i].ppem
		if p > t.strikes[largest].ppem {
			largest = i
		}
		if p >= clamped && p < bestLargerPPEM {
			bestLarger, bestLargerPPEM = i, p
		}
	}
	if bestLarger >= 0 {
		return bestLarger
	}
	return largest
}

// GetGlyph extracts gid's bitmap at the given strike index.
func (t *CbdtTable) GetGlyph(gid font.GlyphID, strikeIndex int) (*BitmapGlyph, error) {
	if strikeIndex < 0 || strikeIndex >= len(t.strikes) {
		return nil, ErrNoStrikeForPPEM
	}
	strike := &t.strikes[strikeIndex]
	g16 := uint16(gid)
	if g16 < strike.startGlyphIndex || g16 > strike.endGlyphIndex {
		return nil, ErrGlyphNotInBitmap
	}
	if err := t.ensureSubtables(strike); err != nil {
		return nil, err
	}

	for i := range strike.subtables {
		ist := &strike.subtables[i]
		if g16 < ist.firstGlyphIndex || g16 > ist.lastGlyphIndex {
			continue
		}
		if ist.imageFormat != 17 {
			return nil, ErrUnsupportedCBDTImage
		}
		glyphIndex := int(g16) - int(ist.firstGlyphIndex)
		if glyphIndex < 0 || glyphIndex >= len(ist.offsets32)-1 {
			return nil, ErrGlyphNotInBitmap
		}
		offset := ist.imageDataOffset + ist.offsets32[glyphIndex]
		size := ist.offsets32[glyphIndex+1] - ist.offsets32[glyphIndex]
		return t.extractFormat17(gid, offset, size, strike.ppem)
	}
	return nil, ErrGlyphNotInBitmap
}

// extractFormat17 reads CBDT image format 17: a 5-byte small glyph
// metrics record followed by a uint32 PNG data length and the PNG
// bytes themselves.
func (t *CbdtTable) extractFormat17(gid font.GlyphID, offset, size uint32, ppem uint8) (*BitmapGlyph, error) {
	data := t.cbdtData
	if int(offset+size) > len(data) || size < 9 {
		return nil, ErrInvalidCBDTData2
	}
	rec := data[offset : offset+size]

	bearingX := int8(rec[2])
	bearingY := int8(rec[3])
	pngLen := binary.BigEndian.Uint32(rec[5:9])
	if 9+pngLen > uint32(len(rec)) {
		return nil, ErrInvalidCBDTData2
	}
	png := rec[9 : 9+pngLen]

	return &BitmapGlyph{
		GlyphID: gid, Data: png, Format: FormatPNG,
		Width: int(rec[1]), Height: int(rec[0]),
		OriginX: float32(bearingX), OriginY: float32(bearingY),
		PPEM: uint16(ppem),
	}, nil
}
