package shaping

import (
	"hash/fnv"
	"math"
	"sort"
	"time"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/unicodedata"
)

// Params is the immutable shaping-parameter bundle from spec §3: size,
// direction, script, language, the set of enabled OpenType feature
// tags, and variation axis values. Two Params with equal fields always
// fingerprint equally, which is what makes a (text, font, Params)
// tuple usable as a shaping-cache key.
type Params struct {
	Size       float64
	Direction  font.Direction
	Script     unicodedata.Script
	Language   string
	Features   []string // OpenType 4-byte feature tags in any order, e.g. "liga", "kern"
	Variations []font.VariationAxis

	// Budget is an optional soft time budget for a Shape call, per
	// spec §5. Zero (the default) means no budget. Excluded from
	// Fingerprint since it governs timing, not shaping output.
	Budget time.Duration
}

// HasFeature reports whether tag is in the enabled feature set.
func (p Params) HasFeature(tag string) bool {
	for _, f := range p.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// Fingerprint returns a deterministic hash of every field that
// influences shaping output, for use as one input to a cache-key
// fingerprint (see package cache's HashBytes). Features is sorted
// first so that two Params built with the same set in a different
// order hash identically.
func (p Params) Fingerprint() []byte {
	h := fnv.New64a()
	writeFloat64(h, p.Size)
	writeByte(h, byte(p.Direction))
	writeByte(h, byte(p.Script))
	_, _ = h.Write([]byte(p.Language))
	_, _ = h.Write([]byte{0})

	features := append([]string(nil), p.Features...)
	sort.Strings(features)
	for _, f := range features {
		_, _ = h.Write([]byte(f))
		_, _ = h.Write([]byte{0})
	}

	for _, v := range p.Variations {
		_, _ = h.Write([]byte(v.Tag))
		writeFloat64(h, v.Value)
	}

	sum := h.Sum64()
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(sum >> (8 * i))
	}
	return out
}

type byteWriter interface {
	Write([]byte) (int, error)
}

func writeByte(w byteWriter, b byte) {
	_, _ = w.Write([]byte{b})
}

func writeFloat64(w byteWriter, f float64) {
	bits := math.Float64bits(f)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(bits >> (8 * i))
	}
	_, _ = w.Write(b)
}
