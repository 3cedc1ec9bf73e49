package ristretto

import (
	"errors"
	"unicode/utf8"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/duracache/memcache"
)

// Cache adapts Ristretto to memcache.Cache. Admission is probabilistic and
// Set is asynchronous, so a freshly written entry may not be readable
// immediately; the adapter tolerates that (a cache miss only costs a store
// read).
type Cache struct {
	c *rc.Cache
}

var _ memcache.Cache = (*Cache)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64 // budget in estimated bytes
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Cache, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

func (p *Cache) Get(key string) ([]byte, bool) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false
	}
	return b, true
}

func (p *Cache) Set(key string, value []byte) {
	// same two-byte-per-character accounting the LRU uses
	p.c.Set(key, value, int64(2*utf8.RuneCount(value)))
}

func (p *Cache) Delete(key string) {
	p.c.Del(key)
}

func (p *Cache) Close() {
	p.c.Wait()
	p.c.Close()
}

// Metrics exposes ristretto metrics if enabled (not part of memcache.Cache).
func (p *Cache) Metrics() *rc.Metrics { return p.c.Metrics }
