// Package cache defines the port interface for the in-memory cache pools.
package cache

// Store is one cache pool: a bounded key-value store with LRU eviction and
// insertion-time expiry. Implementations are pure memory stores with no
// knowledge of what produced a value, and must be safe for concurrent use
// (eviction ordering is shared state).
type Store interface {
	// Get returns the value for key, or false if the key is absent or its
	// entry has expired. A hit refreshes LRU recency but never the TTL.
	Get(key string) ([]byte, bool)
	// Set inserts or overwrites. If the pool exceeds its configured maximum
	// entry count, the least-recently-touched entry is evicted.
	Set(key string, value []byte)
	// Len returns the number of live entries.
	Len() int
}
