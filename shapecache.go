package typf

import (
	"encoding/binary"

	"github.com/fontlaborg/typf/cache"
	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/shaping"
)

// shapeKey is the full cache key for a shaped run, compared exactly
// on every hit so that a Fingerprint collision never returns a run
// shaped from different inputs.
type shapeKey struct {
	text         string
	faceIdentity uint64
	paramsFP     string
}

func newShapeKey(text string, face *font.Face, params shaping.Params) shapeKey {
	return shapeKey{
		text:         text,
		faceIdentity: face.Handle().Identity(),
		paramsFP:     string(params.Fingerprint()),
	}
}

func (k shapeKey) fingerprint() cache.Fingerprint {
	var idBuf [8]byte
	binary.LittleEndian.PutUint64(idBuf[:], k.faceIdentity)
	return cache.HashBytes([]byte(k.text), idBuf[:], []byte(k.paramsFP))
}

// shapeCache memoizes Shaper.Shape results keyed on (text, font
// identity, shaping params). It is transparent to callers: with the
// global cache.Policy disabled, TwoLevel.Get/Put are no-ops and every
// call reaches the underlying Shaper, so output never depends on
// whether caching happens to be on.
var shapeCache = cache.New[shapeKey, *shaping.Run]()
