package bigcache

import (
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/duracache/memcache"
)

// Cache adapts BigCache to memcache.Cache. BigCache evicts by a global life
// window rather than per-entry recency; use it when the sharded, GC-friendly
// layout matters more than strict LRU order.
type Cache struct {
	c *bc.BigCache
}

var _ memcache.Cache = (*Cache)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Cache, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

func (p *Cache) Get(key string) ([]byte, bool) {
	b, err := p.c.Get(key)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (p *Cache) Set(key string, value []byte) {
	_ = p.c.Set(key, value) // dropped on failure per Cache contract
}

func (p *Cache) Delete(key string) {
	_ = p.c.Delete(key)
}

func (p *Cache) Close() error { return p.c.Close() }
