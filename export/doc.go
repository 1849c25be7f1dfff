// Package export serializes raster package output to a concrete file
// format: PNG and PNM bitmaps, an SVG document built from vector glyph
// outlines, and a schema-versioned JSON structured-data document.
package export
