// Package memcache defines the in-process cache sitting in front of a host
// store. The adapter writes through it on every operation, so readers keep
// seeing values even when the store is over quota or unavailable.
//
// The default implementation is the bounded LRU in this package. The
// bigcache and ristretto subpackages adapt those libraries to the same
// interface for callers who prefer a shared or admission-controlled layer;
// note both trade the LRU's strict recency order and byte accounting for
// their own eviction schemes.
package memcache

// Cache is a bounded byte cache. Implementations never fail: an entry that
// cannot be admitted is simply dropped.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}
