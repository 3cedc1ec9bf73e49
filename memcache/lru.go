package memcache

import (
	"container/list"
	"sync"
	"unicode/utf8"
)

const (
	// DefaultMaxEntries caps how many records the LRU holds.
	DefaultMaxEntries = 500
	// DefaultMaxBytes caps the aggregate byte estimate (8 MiB).
	DefaultMaxBytes = 8 << 20
)

type lruEntry struct {
	key   string
	value []byte
	bytes int
}

// LRU is an insertion-ordered bounded cache. A read moves the entry to the
// most-recently-used position; a prune pass evicts from the LRU end while
// EITHER the entry count or the aggregate byte estimate is over its cap.
type LRU struct {
	mu         sync.Mutex
	order      *list.List // front = MRU
	entries    map[string]*list.Element
	total      int
	maxEntries int
	maxBytes   int
}

var _ Cache = (*LRU)(nil)

// NewLRU builds an LRU with the given caps; zero values select the defaults.
func NewLRU(maxEntries, maxBytes int) *LRU {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &LRU{
		order:      list.New(),
		entries:    make(map[string]*list.Element),
		maxEntries: maxEntries,
		maxBytes:   maxBytes,
	}
}

func (c *LRU) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el) // read counts as use
	return el.Value.(*lruEntry).value, true
}

func (c *LRU) Set(key string, value []byte) {
	est := byteEstimate(value)
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
	// a single oversized value is never cached
	if est > c.maxBytes {
		return
	}
	el := c.order.PushFront(&lruEntry{key: key, value: value, bytes: est})
	c.entries[key] = el
	c.total += est

	for c.order.Len() > c.maxEntries || c.total > c.maxBytes {
		c.removeElement(c.order.Back())
	}
}

func (c *LRU) Delete(key string) {
	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
	c.mu.Unlock()
}

// Len reports the current entry count.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Bytes reports the current aggregate byte estimate.
func (c *LRU) Bytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *LRU) removeElement(el *list.Element) {
	e := el.Value.(*lruEntry)
	c.order.Remove(el)
	delete(c.entries, e.key)
	c.total -= e.bytes
}

// byteEstimate approximates a two-byte-per-character footprint of the
// serialized record. Accounting only; never used for correctness.
func byteEstimate(value []byte) int {
	return 2 * utf8.RuneCount(value)
}
