// Package glyphsource resolves, for one glyph, which of a font's
// several possible data sources (vector color layers, embedded SVG,
// embedded bitmap strikes, or the plain outline) a caller's ordered
// preference selects.
package glyphsource
