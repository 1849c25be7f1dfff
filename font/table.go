package font

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/image/font"
	ximage "golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// RawTable scans an SFNT table directory by hand and returns the raw
// bytes of the table named by tag (e.g. "COLR", "CPAL", "CBDT",
// "CBLC", "sbix", "SVG "), or nil if the font has no such table.
//
// golang.org/x/image/font/sfnt does not expose a generic by-tag table
// accessor, so color-glyph extraction (package emoji) needs its own
// minimal directory walk to get at COLR/CPAL/CBDT/CBLC/sbix/SVG bytes.
func RawTable(data []byte, tag string) []byte {
	if len(data) < 12 {
		return nil
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	offset := 12
	for i := 0; i < numTables && offset+16 <= len(data); i++ {
		t := string(data[offset : offset+4])
		tableOffset := binary.BigEndian.Uint32(data[offset+8 : offset+12])
		tableLength := binary.BigEndian.Uint32(data[offset+12 : offset+16])
		if t == tag && uint64(tableOffset)+uint64(tableLength) <= uint64(len(data)) {
			return data[tableOffset : tableOffset+tableLength]
		}
		offset += 16
	}
	return nil
}

// TableReader is the font-table-reader external contract (§6): a
// pluggable backend that turns font bytes into a parsed face and
// answers glyph-level queries against it. The core pipeline depends
// only on this contract, never on a specific file-format parser.
type TableReader interface {
	// Open parses font bytes, selecting faceIndex within a
	// collection file (0 for a single-face font).
	Open(data []byte, faceIndex int) (ParsedFace, error)
}

// ParsedFace is a single opened font face, as produced by a
// TableReader.
type ParsedFace interface {
	Name() string
	FullName() string
	GlyphCount() uint32
	UnitsPerEm() uint16
	GlyphIndex(r rune) GlyphID
	GlyphAdvance(gid GlyphID, ppem float64) float64
	GlyphBounds(gid GlyphID, ppem float64) Rect
	Metrics(ppem float64) Metrics
	// Outline extracts the vector outline for gid at ppem pixels per
	// em. Returns ErrNoOutline if the glyph has no outline segments
	// (a pure color/bitmap glyph, or a space).
	Outline(gid GlyphID, ppem float64) (*GlyphOutline, error)
}

var readerRegistry = map[string]TableReader{
	"ximage": &ximageReader{},
}

// DefaultReaderName is the table reader used when none is requested
// explicitly.
const DefaultReaderName = "ximage"

// RegisterReader installs a custom TableReader backend under name,
// so callers can swap in an alternative font-parsing library without
// touching the rest of the pipeline.
func RegisterReader(name string, r TableReader) {
	readerRegistry[name] = r
}

func getReader(name string) (TableReader, error) {
	if name == "" {
		name = DefaultReaderName
	}
	r, ok := readerRegistry[name]
	if !ok {
		return nil, ErrUnsupportedReader
	}
	return r, nil
}

// ximageReader is the default TableReader, backed by
// golang.org/x/image/font/opentype and golang.org/x/image/font/sfnt.
type ximageReader struct{}

func (ximageReader) Open(data []byte, faceIndex int) (ParsedFace, error) {
	var f *ximage.Font
	var err error
	if faceIndex > 0 {
		coll, cerr := ximage.ParseCollection(data)
		if cerr != nil {
			return nil, &ParseError{Err: cerr}
		}
		if faceIndex >= coll.NumFonts() {
			return nil, ErrFaceIndexOutOfRange
		}
		f, err = coll.Font(faceIndex)
	} else {
		f, err = ximage.Parse(data)
	}
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return &ximageFace{font: f, raw: data}, nil
}

type ximageFace struct {
	font *ximage.Font
	raw  []byte
}

func (f *ximageFace) Name() string {
	if s, err := f.font.Name(nil, sfnt.NameIDFamily); err == nil {
		return s
	}
	return ""
}

func (f *ximageFace) FullName() string {
	if s, err := f.font.Name(nil, sfnt.NameIDFull); err == nil {
		return s
	}
	return ""
}

func (f *ximageFace) GlyphCount() uint32 {
	return uint32(f.font.NumGlyphs()) //nolint:gosec // font glyph counts never approach uint32 range
}

func (f *ximageFace) UnitsPerEm() uint16 {
	return uint16(f.font.UnitsPerEm()) //nolint:gosec // SFNT UnitsPerEm is defined as a 16-bit field
}

func (f *ximageFace) GlyphIndex(r rune) GlyphID {
	idx, err := f.font.GlyphIndex(nil, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

func (f *ximageFace) GlyphAdvance(gid GlyphID, ppem float64) float64 {
	var buf sfnt.Buffer
	adv, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), fixed266(ppem), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

func (f *ximageFace) GlyphBounds(gid GlyphID, ppem float64) Rect {
	var buf sfnt.Buffer
	b, _, err := f.font.GlyphBounds(&buf, sfnt.GlyphIndex(gid), fixed266(ppem), font.HintingNone)
	if err != nil {
		return Rect{}
	}
	return Rect{
		MinX: fixedToFloat(b.Min.X),
		MinY: fixedToFloat(b.Min.Y),
		MaxX: fixedToFloat(b.Max.X),
		MaxY: fixedToFloat(b.Max.Y),
	}
}

func (f *ximageFace) Metrics(ppem float64) Metrics {
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, fixed266(ppem), font.HintingNone)
	if err != nil {
		return Metrics{}
	}
	return Metrics{
		Ascent:    fixedToFloat(m.Ascent),
		Descent:   fixedToFloat(m.Descent),
		LineGap:   fixedToFloat(m.Height) - fixedToFloat(m.Ascent) + fixedToFloat(m.Descent),
		XHeight:   fixedToFloat(m.XHeight),
		CapHeight: fixedToFloat(m.CapHeight),
	}
}

func (f *ximageFace) Outline(gid GlyphID, ppem float64) (*GlyphOutline, error) {
	var buf sfnt.Buffer
	segments, err := f.font.LoadGlyph(&buf, sfnt.GlyphIndex(gid), fixed266(ppem), nil)
	if err != nil {
		return nil, fmt.Errorf("font: load glyph %d: %w", gid, err)
	}
	if len(segments) == 0 {
		return nil, ErrNoOutline
	}

	out := &GlyphOutline{GID: gid, Segments: make([]OutlineSegment, 0, len(segments))}
	var bounds Rect
	for _, seg := range segments {
		var s OutlineSegment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = OutlineOpMoveTo
			s.Points[0] = outlinePoint(seg.Args[0])
		case sfnt.SegmentOpLineTo:
			s.Op = OutlineOpLineTo
			s.Points[0] = outlinePoint(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			s.Op = OutlineOpQuadTo
			s.Points[0] = outlinePoint(seg.Args[0])
			s.Points[1] = outlinePoint(seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			s.Op = OutlineOpCubicTo
			s.Points[0] = outlinePoint(seg.Args[0])
			s.Points[1] = outlinePoint(seg.Args[1])
			s.Points[2] = outlinePoint(seg.Args[2])
		}
		out.Segments = append(out.Segments, s)
		for _, p := range s.activePoints() {
			bounds = bounds.Union(Rect{MinX: float64(p.X), MinY: float64(p.Y), MaxX: float64(p.X), MaxY: float64(p.Y)})
		}
	}
	out.Bounds = bounds
	out.Advance = float32(f.GlyphAdvance(gid, ppem))
	return out, nil
}

func fixed266(ppem float64) fixed.Int26_6  { return fixed.Int26_6(ppem * 64) }
func fixedToFloat(x fixed.Int26_6) float64 { return float64(x) / 64.0 }

func outlinePoint(p fixed.Point26_6) OutlinePoint {
	return OutlinePoint{X: float32(fixedToFloat(p.X)), Y: float32(fixedToFloat(p.Y))}
}
