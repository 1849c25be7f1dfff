// Package cache implements the two-level cache described by the core
// pipeline: a small direct-indexed L1 with lock-free reads, backed by
// a larger sharded LRU L2. Both levels are consulted only while the
// process-wide Policy is enabled; when disabled, Get always reports a
// miss and Put is a no-op.
package cache
