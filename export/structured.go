package export

import (
	"encoding/json"
	"io"

	"github.com/fontlaborg/typf/raster"
)

// SchemaVersion is the structured-data document's format version,
// bumped whenever a field is added, removed, or reinterpreted.
const SchemaVersion = "1.0"

// StructuredDocument is the top-level shape written by EncodeStructured,
// matching spec §6's external structured-data interface exactly.
type StructuredDocument struct {
	SchemaVersion string                   `json:"schema_version"`
	Glyphs        []raster.StructuredGlyph `json:"glyphs"`
	Metrics       raster.Metrics           `json:"metrics"`
}

// EncodeStructured writes glyphs and metrics as a schema-versioned
// JSON document.
func EncodeStructured(w io.Writer, glyphs []raster.StructuredGlyph, metrics raster.Metrics) error {
	doc := StructuredDocument{SchemaVersion: SchemaVersion, Glyphs: glyphs, Metrics: metrics}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
