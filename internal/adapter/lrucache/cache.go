// Package lrucache implements the cache port using hashicorp/golang-lru's
// expirable LRU: deterministic least-recently-used eviction with a fixed
// per-pool TTL applied at insertion time.
package lrucache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Pool is one bounded LRU+TTL cache pool. Two pools never share keyspace:
// each is a distinct store owned by one provider family.
type Pool struct {
	name string
	lru  *expirable.LRU[string, []byte]
}

// New creates a pool holding at most maxEntries values, each expiring ttl
// after insertion. A Get refreshes recency but not expiry.
func New(name string, maxEntries int, ttl time.Duration) *Pool {
	return &Pool{
		name: name,
		lru:  expirable.NewLRU[string, []byte](maxEntries, nil, ttl),
	}
}

// Name identifies the pool in logs and metrics.
func (p *Pool) Name() string { return p.name }

// Get returns the cached value, or false if absent or expired.
func (p *Pool) Get(key string) ([]byte, bool) {
	return p.lru.Get(key)
}

// Set inserts or overwrites, evicting the least-recently-touched entry on
// capacity pressure.
func (p *Pool) Set(key string, value []byte) {
	p.lru.Add(key, value)
}

// Len returns the number of live entries.
func (p *Pool) Len() int { return p.lru.Len() }
