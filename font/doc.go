// Package font provides the font handle, face, and raw-table-reader
// types shared by every later pipeline stage: a Handle is an
// immutable, reference-counted font blob; a Face pairs a Handle with a
// size and shaping configuration; a TableReader is the pluggable
// backend that turns font bytes into glyph metrics and outlines.
package font
