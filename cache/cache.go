package cache

// TwoLevel is the cache contract described by the spec: L1 is
// consulted first, then L2 on an L1 miss; an L2 hit is promoted to
// L1, and the entry evicted from L1 on a Put migrates down to L2.
//
// K is the full cache key (compared exactly on every hit, so
// fingerprint collisions never return a wrong value); V is the
// immutable cached value (a shaped run or a rendered glyph).
//
// TwoLevel is safe for concurrent use. All operations are no-ops
// (Get always misses, Put is ignored) while the global Policy is
// disabled.
type TwoLevel[K comparable, V any] struct {
	l1 *l1Table[K, V]
	l2 *l2Table[K, V]
}

// New creates an empty two-level cache.
func New[K comparable, V any]() *TwoLevel[K, V] {
	return &TwoLevel[K, V]{
		l1: newL1Table[K, V](),
		l2: newL2Table[K, V](),
	}
}

// Get looks up key by its fingerprint. L1 is tried first; on an L1
// miss, L2 is consulted and, on an L2 hit, the entry is promoted into
// L1 so that a repeated lookup for the same key is an L1 hit.
func (c *TwoLevel[K, V]) Get(fp Fingerprint, key K) (V, bool) {
	if !Enabled() {
		var zero V
		return zero, false
	}

	if v, ok := c.l1.get(fp, key); ok {
		return v, true
	}

	if v, ok := c.l2.get(fp, key); ok {
		c.promote(fp, key, v)
		return v, true
	}

	var zero V
	return zero, false
}

// Put installs value under key. The entry evicted from L1 (if the
// slot at fp's index was occupied by a different key) migrates to L2
// rather than being discarded.
func (c *TwoLevel[K, V]) Put(fp Fingerprint, key K, value V) {
	if !Enabled() {
		return
	}

	evicted, hadEvicted := c.l1.put(fp, key, value)
	if hadEvicted {
		c.l2.put(evicted.fp, evicted.key, evicted.value)
	}
}

// promote installs a value recovered from L2 into L1 without touching
// L2's own bookkeeping (L2 already recorded the hit).
func (c *TwoLevel[K, V]) promote(fp Fingerprint, key K, value V) {
	evicted, hadEvicted := c.l1.put(fp, key, value)
	if hadEvicted {
		c.l2.put(evicted.fp, evicted.key, evicted.value)
	}
}

// Clear empties both cache levels.
func (c *TwoLevel[K, V]) Clear() {
	c.l1.clear()
	c.l2.clear()
}

// Stats reports point-in-time cache statistics. L1 size is not
// tracked precisely (slots may hold stale entries past the Go GC's
// reach until overwritten), so L2Len reports L2's entry count, which is
// the durable backing store.
type Stats struct {
	L2Len      int
	L2Capacity int
	Hits       uint64
	Misses     uint64
	HitRate    float64
	Evictions  uint64
}

// Stats returns current statistics for the L2 level.
func (c *TwoLevel[K, V]) Stats() Stats {
	hits := c.l2.hits.Load()
	misses := c.l2.misses.Load()
	evictions := c.l2.evictions.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		L2Len:      c.l2.len(),
		L2Capacity: c.l2.capacity * l2Shards,
		Hits:       hits,
		Misses:     misses,
		HitRate:    hitRate,
		Evictions:  evictions,
	}
}
