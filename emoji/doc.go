// Package emoji extracts color glyph data — COLR/CPAL layers, sbix
// and CBDT/CBLC bitmap strikes, and embedded SVG documents — from the
// raw SFNT tables package font exposes through Handle.RawTable. It
// implements package glyphsource's Availability interface so the
// resolver can ask a font what it actually has before a renderer
// commits to a source.
package emoji
