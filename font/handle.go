package font

import (
	"hash/fnv"
	"sync/atomic"
)

// Handle is a shared, read-only font: an immutable byte blob, a face
// parsed within it (face index 0 unless the data is a collection
// file), lazily computed metrics, and an optional variation instance.
// Multiple pipeline threads may hold and use the same Handle
// concurrently; none of them may mutate it.
//
// Handle is reference-counted rather than garbage-collector-only: a
// caller that mmap'd the backing bytes needs a deterministic point at
// which it is safe to unmap, so Retain/Release track outstanding
// holders explicitly. The zero value is not valid; use Open.
type Handle struct {
	// addr self-reference guards against accidental copy-by-value,
	// which would let two Handles race on the same refcount.
	addr *Handle

	data []byte
	face ParsedFace

	readerName string
	faceIndex  int
	variations []VariationAxis
	identity   uint64

	refs atomic.Int32

	metricsOnce  atomic.Bool
	cachedMetric Metrics
}

// HandleOption configures Open.
type HandleOption func(*handleConfig)

type handleConfig struct {
	readerName string
	faceIndex  int
	variations []VariationAxis
}

// WithReader selects a non-default TableReader backend by name.
func WithReader(name string) HandleOption {
	return func(c *handleConfig) { c.readerName = name }
}

// WithFaceIndex selects a face within a font collection file.
func WithFaceIndex(i int) HandleOption {
	return func(c *handleConfig) { c.faceIndex = i }
}

// WithVariations attaches a variation-axis instance to the handle.
func WithVariations(axes ...VariationAxis) HandleOption {
	return func(c *handleConfig) { c.variations = axes }
}

// Open parses font bytes into a Handle with one reference already
// held (the caller must Release it, or Retain before sharing further).
// The input is copied so the caller's slice may be reused or mutated
// after Open returns.
func Open(data []byte, opts ...HandleOption) (*Handle, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	cfg := handleConfig{readerName: DefaultReaderName}
	for _, opt := range opts {
		opt(&cfg)
	}

	reader, err := getReader(cfg.readerName)
	if err != nil {
		return nil, err
	}

	owned := make([]byte, len(data))
	copy(owned, data)

	face, err := reader.Open(owned, cfg.faceIndex)
	if err != nil {
		return nil, err
	}

	h := &Handle{
		data:       owned,
		face:       face,
		readerName: cfg.readerName,
		faceIndex:  cfg.faceIndex,
		variations: cfg.variations,
		identity:   identityHash(owned, cfg.faceIndex),
	}
	h.addr = h
	h.refs.Store(1)
	return h, nil
}

func (h *Handle) copyCheck() {
	if h.addr != h {
		panic("font: Handle must not be copied by value")
	}
}

// Retain increments the reference count and returns h, so it can be
// used as `shared := h.Retain()` at a sharing point.
func (h *Handle) Retain() *Handle {
	h.copyCheck()
	h.refs.Add(1)
	return h
}

// Release decrements the reference count. When it reaches zero the
// Handle's backing bytes and parsed face are dropped; using the
// Handle after the last Release is a programming error.
func (h *Handle) Release() {
	h.copyCheck()
	if h.refs.Add(-1) == 0 {
		h.data = nil
		h.face = nil
	}
}

// RefCount reports the current number of outstanding holders.
func (h *Handle) RefCount() int32 {
	h.copyCheck()
	return h.refs.Load()
}

func (h *Handle) Name() string {
	h.copyCheck()
	if h.face == nil {
		return ""
	}
	if n := h.face.Name(); n != "" {
		return n
	}
	return h.face.FullName()
}

func (h *Handle) UnitsPerEm() uint16 {
	h.copyCheck()
	if h.face == nil {
		return 0
	}
	return h.face.UnitsPerEm()
}

func (h *Handle) GlyphCount() uint32 {
	h.copyCheck()
	if h.face == nil {
		return 0
	}
	return h.face.GlyphCount()
}

func (h *Handle) GlyphIndex(r rune) GlyphID {
	h.copyCheck()
	if h.face == nil {
		return 0
	}
	return h.face.GlyphIndex(r)
}

// GlyphAdvance returns the horizontal advance of gid at ppem pixels
// per em.
func (h *Handle) GlyphAdvance(gid GlyphID, ppem float64) float64 {
	h.copyCheck()
	if h.face == nil {
		return 0
	}
	return h.face.GlyphAdvance(gid, ppem)
}

// GlyphBounds returns the scaled bounding box of gid at ppem pixels
// per em.
func (h *Handle) GlyphBounds(gid GlyphID, ppem float64) Rect {
	h.copyCheck()
	if h.face == nil {
		return Rect{}
	}
	return h.face.GlyphBounds(gid, ppem)
}

// Metrics returns font metrics scaled to ppem pixels per em.
func (h *Handle) Metrics(ppem float64) Metrics {
	h.copyCheck()
	if h.face == nil {
		return Metrics{}
	}
	return h.face.Metrics(ppem)
}

// Outline extracts the vector outline for gid at ppem pixels per em.
func (h *Handle) Outline(gid GlyphID, ppem float64) (*GlyphOutline, error) {
	h.copyCheck()
	if h.face == nil {
		return nil, ErrNilHandle
	}
	return h.face.Outline(gid, ppem)
}

// Bytes returns the whole font file this Handle was opened from, for
// backends (e.g. an alternative shaping library) that need to parse
// the font themselves rather than go through TableReader.
func (h *Handle) Bytes() []byte {
	h.copyCheck()
	return h.data
}

// RawTable returns the raw bytes of an SFNT table by tag (e.g.
// "COLR", "CBDT", "sbix"), or nil if absent. Used by package emoji to
// extract color-glyph data independent of the TableReader backend.
func (h *Handle) RawTable(tag string) []byte {
	h.copyCheck()
	return RawTable(h.data, tag)
}

// Variations returns the variation-axis instance this handle was
// opened with, if any.
func (h *Handle) Variations() []VariationAxis {
	h.copyCheck()
	return h.variations
}

// Identity returns a value equal across Handles opened from the same
// bytes and face index, suitable as one field of a shaping or glyph
// cache-key fingerprint. It is computed once at Open, not per call.
func (h *Handle) Identity() uint64 {
	h.copyCheck()
	return h.identity
}

func identityHash(data []byte, faceIndex int) uint64 {
	sum := fnv.New64a()
	_, _ = sum.Write(data)
	_, _ = sum.Write([]byte{byte(faceIndex)})
	return sum.Sum64()
}
