package emoji

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"io"

	"github.com/fontlaborg/typf/font"
)

var (
	ErrNoSVGTable     = errors.New("emoji: font has no SVG table")
	ErrInvalidSVGData = errors.New("emoji: invalid SVG table data")
	ErrGlyphNotInSVG  = errors.New("emoji: glyph not found in SVG table")
)

// SvgTable indexes the OpenType "SVG " table: a document list mapping
// glyph-ID ranges to (possibly gzip-compressed) SVG documents.
//
// Extraction returns the document at the font's native units-per-em;
// it is the renderer's job to scale from there, not this package's —
// extracting at a fixed PPEM here would double-scale whatever the
// renderer later applies.
type SvgTable struct {
	data    []byte
	entries []svgDocumentRecord
}

type svgDocumentRecord struct {
	startGlyphID, endGlyphID uint16
	offset, length           uint32
}

// ParseSvgTable parses the raw "SVG " table.
func ParseSvgTable(data []byte) (*SvgTable, error) {
	if len(data) == 0 {
		return nil, ErrNoSVGTable
	}
	if len(data) < 10 {
		return nil, ErrInvalidSVGData
	}

	offsetToDocumentList := binary.BigEndian.Uint32(data[2:6])
	listOff := int(offsetToDocumentList)
	if listOff+2 > len(data) {
		return nil, ErrInvalidSVGData
	}
	numEntries := binary.BigEndian.Uint16(data[listOff : listOff+2])

	const recordSize = 12
	recordsStart := listOff + 2
	if recordsStart+int(numEntries)*recordSize > len(data) {
		return nil, ErrInvalidSVGData
	}

	t := &SvgTable{data: data}
	for i := uint16(0); i < numEntries; i++ {
		pos := recordsStart + int(i)*recordSize
		relOffset := binary.BigEndian.Uint32(data[pos+4 : pos+8])
		t.entries = append(t.entries, svgDocumentRecord{
			startGlyphID: binary.BigEndian.Uint16(data[pos : pos+2]),
			endGlyphID:   binary.BigEndian.Uint16(data[pos+2 : pos+4]),
			offset:       uint32(listOff) + relOffset,
			length:       binary.BigEndian.Uint32(data[pos+8 : pos+12]),
		})
	}
	return t, nil
}

func (t *SvgTable) find(gid font.GlyphID) (svgDocumentRecord, bool) {
	g16 := uint16(gid)
	for _, e := range t.entries {
		if g16 >= e.startGlyphID && g16 <= e.endGlyphID {
			return e, true
		}
	}
	return svgDocumentRecord{}, false
}

// HasGlyph reports whether gid has an SVG document.
func (t *SvgTable) HasGlyph(gid font.GlyphID) bool {
	_, found := t.find(gid)
	return found
}

// GetGlyph returns gid's raw SVG document bytes, transparently
// gunzipping when the document is gzip-compressed (the OpenType spec
// permits either).
func (t *SvgTable) GetGlyph(gid font.GlyphID) ([]byte, error) {
	rec, found := t.find(gid)
	if !found {
		return nil, ErrGlyphNotInSVG
	}
	if int(rec.offset+rec.length) > len(t.data) {
		return nil, ErrInvalidSVGData
	}
	doc := t.data[rec.offset : rec.offset+rec.length]

	if len(doc) >= 2 && doc[0] == 0x1f && doc[1] == 0x8b {
		r, err := gzip.NewReader(bytes.NewReader(doc))
		if err != nil {
			return nil, ErrInvalidSVGData
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, ErrInvalidSVGData
		}
		return out, nil
	}
	return doc, nil
}
