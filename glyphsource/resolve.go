package glyphsource

import (
	"errors"

	"github.com/fontlaborg/typf/font"
)

// ErrNoSource is returned when a glyph has no data in any allow-listed
// kind and no default outline table either (e.g. a font missing glyf,
// CFF, and CFF2 entirely, or a glyph index past the font's GlyphCount).
var ErrNoSource = errors.New("glyphsource: glyph has no available source")

// Availability answers whether a specific glyph has data in a given
// source kind. Package emoji's font wrapper, and *font.Handle's own
// outline tables, implement this to drive Resolve.
type Availability interface {
	Has(kind SourceKind, gid font.GlyphID) bool
}

// Source is the resolver's result: which kind to draw gid from.
type Source struct {
	Kind SourceKind
	GID  font.GlyphID
}

// Resolve implements the spec's resolver algorithm: walk pref.Allow in
// order, returning the first kind both available for gid and not
// denied; if none hit, fall back unconditionally to whichever of
// glyf/cff/cff2 the font actually has, bypassing the deny-set (a
// render always needs some drawable source).
//
// A documented edge case this must get right: a color glyph present
// in COLR-v0 but missing from COLR-v1 must fall through to COLR-v0
// when both are allow-listed in that order, not silently resolve to
// the monochrome outline.
func Resolve(avail Availability, gid font.GlyphID, pref Preference) (Source, error) {
	for _, kind := range pref.Allow {
		if pref.Denied(kind) {
			continue
		}
		if avail.Has(kind, gid) {
			return Source{Kind: kind, GID: gid}, nil
		}
	}

	for _, kind := range outlineFallbackOrder {
		if avail.Has(kind, gid) {
			return Source{Kind: kind, GID: gid}, nil
		}
	}

	return Source{}, ErrNoSource
}
