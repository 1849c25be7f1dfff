package emoji

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/png"

	"github.com/fontlaborg/typf/font"
)

var (
	ErrNoSbixTable      = errors.New("emoji: font has no sbix table")
	ErrNoCBDTTable      = errors.New("emoji: font has no CBDT table")
	ErrNoCBLCTable      = errors.New("emoji: font has no CBLC table")
	ErrInvalidSbixData  = errors.New("emoji: invalid sbix table data")
	ErrInvalidCBLCData  = errors.New("emoji: invalid CBLC table data")
	ErrInvalidCBDTData  = errors.New("emoji: invalid CBDT table data")
	ErrGlyphNotInBitmap = errors.New("emoji: glyph not found in bitmap table")
)

// BitmapFormat indicates how BitmapGlyph.Data is encoded.
type BitmapFormat int

const (
	FormatPNG BitmapFormat = iota
	FormatRaw
)

// BitmapGlyph is one embedded bitmap strike for one glyph.
type BitmapGlyph struct {
	GlyphID          font.GlyphID
	Data             []byte
	Format           BitmapFormat
	Width, Height    int
	OriginX, OriginY float32
	PPEM             uint16
}

// Decode decodes Data to an image.Image; only PNG is supported, which
// covers every production sbix/CBDT font in practice.
func (b *BitmapGlyph) Decode() (image.Image, error) {
	if b.Format != FormatPNG {
		return nil, errors.New("emoji: non-PNG bitmap decoding not supported")
	}
	return png.Decode(bytes.NewReader(b.Data))
}

// SbixTable parses Apple's sbix table: one or more strikes (bitmap
// sizes), each holding a per-glyph offset table into embedded PNGs.
type SbixTable struct {
	data      []byte
	numGlyphs uint16
	strikes   []sbixStrike
}

type sbixStrike struct {
	ppem      uint16
	offset    uint32
	glyphData []uint32
}

// ParseSbixTable parses data (the raw sbix table); numGlyphs comes
// from the font's maxp table (font.Handle.GlyphCount).
func ParseSbixTable(data []byte, numGlyphs uint32) (*SbixTable, error) {
	if len(data) == 0 {
		return nil, ErrNoSbixTable
	}
	if len(data) < 8 {
		return nil, ErrInvalidSbixData
	}

	t := &SbixTable{data: data, numGlyphs: uint16(numGlyphs)}
	version := binary.BigEndian.Uint16(data[0:2])
	if version != 1 {
		return nil, ErrInvalidSbixData
	}
	numStrikes := binary.BigEndian.Uint32(data[4:8])
	if int(8+numStrikes*4) > len(data) {
		return nil, ErrInvalidSbixData
	}

	t.strikes = make([]sbixStrike, numStrikes)
	for i := uint32(0); i < numStrikes; i++ {
		offset := binary.BigEndian.Uint32(data[8+i*4 : 12+i*4])
		if err := t.parseStrike(i, offset); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *SbixTable) parseStrike(index uint32, offset uint32) error {
	data := t.data
	if int(offset)+4 > len(data) {
		return ErrInvalidSbixData
	}
	strike := &t.strikes[index]
	strike.offset = offset
	strike.ppem = binary.BigEndian.Uint16(data[offset : offset+2])

	glyphOffsetStart := offset + 4
	numOffsets := int(t.numGlyphs) + 1
	if int(glyphOffsetStart)+numOffsets*4 > len(data) {
		return ErrInvalidSbixData
	}
	strike.glyphData = make([]uint32, numOffsets)
	for i := 0; i < numOffsets; i++ {
		pos := int(glyphOffsetStart) + i*4
		strike.glyphData[i] = binary.BigEndian.Uint32(data[pos : pos+4])
	}
	return nil
}

// NumStrikes reports how many bitmap sizes are available.
func (t *SbixTable) NumStrikes() int { return len(t.strikes) }

// HasGlyph reports whether gid has data in any strike.
func (t *SbixTable) HasGlyph(gid font.GlyphID) bool {
	if int(gid) >= int(t.numGlyphs) {
		return false
	}
	for i := range t.strikes {
		if t.hasGlyphInStrike(gid, i) {
			return true
		}
	}
	return false
}

func (t *SbixTable) hasGlyphInStrike(gid font.GlyphID, strikeIndex int) bool {
	s := &t.strikes[strikeIndex]
	if int(gid)+1 >= len(s.glyphData) {
		return false
	}
	return s.glyphData[gid+1] > s.glyphData[gid]
}

// BestStrikeForPPEM returns the strike index closest to ppem,
// preferring the larger strike on a tie.
func (t *SbixTable) BestStrikeForPPEM(ppem uint16) int {
	if len(t.strikes) == 0 {
		return -1
	}
	best := 0
	bestDiff := absDiffU16(t.strikes[0].ppem, ppem)
	for i := 1; i < len(t.strikes); i++ {
		diff := absDiffU16(t.strikes[i].ppem, ppem)
		if diff < bestDiff || (diff == bestDiff && t.strikes[i].ppem > t.strikes[best].ppem) {
			best, bestDiff = i, diff
		}
	}
	return best
}

// GetGlyph extracts the bitmap for gid from the strike at strikeIndex.
func (t *SbixTable) GetGlyph(gid font.GlyphID, strikeIndex int) (*BitmapGlyph, error) {
	if strikeIndex < 0 || strikeIndex >= len(t.strikes) {
		return nil, ErrGlyphNotInBitmap
	}
	if !t.hasGlyphInStrike(gid, strikeIndex) {
		return nil, ErrGlyphNotInBitmap
	}
	s := &t.strikes[strikeIndex]
	glyphStart, glyphEnd := s.glyphData[gid], s.glyphData[gid+1]

	dataOffset := s.offset + glyphStart
	if int(dataOffset)+8 > len(t.data) {
		return nil, ErrInvalidSbixData
	}
	originX := int16(binary.BigEndian.Uint16(t.data[dataOffset : dataOffset+2]))
	originY := int16(binary.BigEndian.Uint16(t.data[dataOffset+2 : dataOffset+4]))
	graphicType := string(t.data[dataOffset+4 : dataOffset+8])
	if graphicType != "png " {
		return nil, errors.New("emoji: unsupported sbix graphic type " + graphicType)
	}

	imageStart := dataOffset + 8
	imageEnd := s.offset + glyphEnd
	if int(imageEnd) > len(t.data) || imageEnd < imageStart {
		return nil, ErrInvalidSbixData
	}
	imageData := t.data[imageStart:imageEnd]

	bitmap := &BitmapGlyph{
		GlyphID: gid, Data: imageData, Format: FormatPNG,
		OriginX: float32(originX), OriginY: float32(originY), PPEM: s.ppem,
	}
	if img, err := png.Decode(bytes.NewReader(imageData)); err == nil {
		b := img.Bounds()
		bitmap.Width, bitmap.Height = b.Dx(), b.Dy()
	}
	return bitmap, nil
}

func absDiffU16(a, b uint16) uint16 {
	if a > b {
		return a - b
	}
	return b - a
}
