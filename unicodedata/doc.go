// Package unicodedata is the Unicode processor stage: script
// detection, bidi level computation, segmentation into
// direction+script runs, and text normalization.
package unicodedata
