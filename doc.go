// Package typf is the pipeline orchestrator: it holds a selected
// shaper, renderer, and exporter and runs text through them against a
// shared font, in the fixed order input validation → shaping →
// rendering → exporting. Unicode processing (script and bidi
// segmentation) runs inside a shaper that performs it, such as
// shaping.UnicodePreprocessedShaper; no stage normalizes text.
//
// A Pipeline never mutates the backends it holds; it calls them
// through their contracts and tags any error they return with the
// stage that produced it, without transforming the error itself.
package typf
