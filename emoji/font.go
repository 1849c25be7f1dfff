package emoji

import (
	"sync"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/glyphsource"
)

// Font lazily parses a *font.Handle's color tables on first use and
// caches the parsed result, so repeated Availability.Has calls during
// resolution don't re-walk the same COLR/CBLC/sbix bytes.
type Font struct {
	handle *font.Handle

	once struct {
		colr, cbdt, sbix, svg sync.Once
	}
	colr *ColorTable
	cbdt *CbdtTable
	sbix *SbixTable
	svg  *SvgTable
}

// NewFont wraps handle for color-table extraction. handle must outlive
// the returned Font.
func NewFont(handle *font.Handle) *Font {
	return &Font{handle: handle}
}

// ColorTable returns the font's parsed COLR/CPAL table, or nil if the
// font has none or it failed to parse. Exported so a renderer can walk
// a resolved glyph's paint layers directly instead of re-deriving them
// from Has's yes/no answer.
func (f *Font) ColorTable() *ColorTable {
	return f.colorTable()
}

func (f *Font) colorTable() *ColorTable {
	f.once.colr.Do(func() {
		colr := f.handle.RawTable("COLR")
		cpal := f.handle.RawTable("CPAL")
		t, err := ParseColorTable(colr, cpal)
		if err == nil {
			f.colr = t
		}
	})
	return f.colr
}

func (f *Font) cbdtTable() *CbdtTable {
	f.once.cbdt.Do(func() {
		cbdt := f.handle.RawTable("CBDT")
		cblc := f.handle.RawTable("CBLC")
		t, err := ParseCbdtTable(cbdt, cblc)
		if err == nil {
			f.cbdt = t
		}
	})
	return f.cbdt
}

func (f *Font) sbixTable() *SbixTable {
	f.once.sbix.Do(func() {
		data := f.handle.RawTable("sbix")
		t, err := ParseSbixTable(data, uint32(f.handle.GlyphCount()))
		if err == nil {
			f.sbix = t
		}
	})
	return f.sbix
}

func (f *Font) svgTable() *SvgTable {
	f.once.svg.Do(func() {
		data := f.handle.RawTable("SVG ")
		t, err := ParseSvgTable(data)
		if err == nil {
			f.svg = t
		}
	})
	return f.svg
}

// Has implements glyphsource.Availability: it reports whether gid has
// data in the requested source kind, used by glyphsource.Resolve to
// walk a caller's allow-list.
func (f *Font) Has(kind glyphsource.SourceKind, gid font.GlyphID) bool {
	switch kind {
	case glyphsource.ColorV1:
		t := f.colorTable()
		return t != nil && t.Version() == 1 && t.HasGlyphV1(gid)
	case glyphsource.ColorV0:
		t := f.colorTable()
		return t != nil && t.HasGlyphV0(gid)
	case glyphsource.EmbeddedSVG:
		t := f.svgTable()
		return t != nil && t.HasGlyph(gid)
	case glyphsource.EmbeddedBitmapSbix:
		t := f.sbixTable()
		return t != nil && t.HasGlyph(gid)
	case glyphsource.EmbeddedBitmapCBDT:
		t := f.cbdtTable()
		return t != nil && t.HasGlyph(gid)
	case glyphsource.GlyfOutline:
		return len(f.handle.RawTable("glyf")) > 0 && int(gid) < int(f.handle.GlyphCount())
	case glyphsource.CFFOutline:
		return len(f.handle.RawTable("CFF ")) > 0 && int(gid) < int(f.handle.GlyphCount())
	case glyphsource.CFF2Outline:
		return len(f.handle.RawTable("CFF2")) > 0 && int(gid) < int(f.handle.GlyphCount())
	default:
		return false
	}
}
