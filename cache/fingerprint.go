package cache

import "hash/fnv"

// Fingerprint is a fixed-size cache key fingerprint: a fast,
// non-cryptographic hash of every input that influences a cached
// output. Fingerprint collisions are possible (the hash space is only
// 64 bits); callers must additionally store and compare the full key
// on every lookup rather than trusting the fingerprint alone — see
// TwoLevel, which does exactly that.
type Fingerprint uint64

// HashBytes computes an FNV-1a fingerprint over the given byte slices,
// each treated as a separate field so that ("ab","c") and ("a","bc")
// do not collide on concatenation.
func HashBytes(fields ...[]byte) Fingerprint {
	h := fnv.New64a()
	for _, f := range fields {
		_, _ = h.Write(f)
		// Field separator so that concatenation boundaries matter.
		_, _ = h.Write([]byte{0})
	}
	return Fingerprint(h.Sum64())
}

// HashString is a convenience wrapper for a single string field.
func HashString(s string) Fingerprint {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return Fingerprint(h.Sum64())
}
