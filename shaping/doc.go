// Package shaping converts normalized, segmented text into positioned
// glyphs. Shaper is the pluggable contract; TrivialShaper,
// OpenTypeShaper, UnicodePreprocessedShaper, and NativeShaper are its
// implementations, in increasing order of script coverage.
package shaping
