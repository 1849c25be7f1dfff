// Package raster turns shaped glyph runs into pixels, vector paths, or
// a structured description of what would have been drawn.
//
// A Renderer consumes a shaping.Run (or, through RenderGlyph, a single
// glyph in isolation for atlas-building callers) and produces one of
// three output shapes: an RGBA bitmap, an ordered list of vector path
// outlines, or a schema-versioned structured description. The bitmap
// path rasterizes outlines with the same scanline coverage technique
// used throughout this codebase's ancestry, then composites glyph
// colors with Porter-Duff source-over.
package raster
