package duracache

import (
	"context"
	"fmt"
	"sync"

	"github.com/unkn0wn-root/duracache/internal/keymutex"
	"github.com/unkn0wn-root/duracache/memcache"
	"github.com/unkn0wn-root/duracache/store"
)

// Adapter is the get/set/remove facade over one namespace of a host store.
// It writes through an in-process cache, recovers quota failures, and latches
// a breaker on any other store failure so a structurally broken store is not
// hammered again for the lifetime of the adapter.
//
// Adapter methods never return errors: per the degradation model, store
// failures convert into reduced durability, observable through Hooks and the
// Logger. Bindings that share a namespace must share one Adapter so they also
// share its cache and breaker state.
type Adapter struct {
	ns    string
	store store.Store
	cache memcache.Cache
	log   Logger
	hooks Hooks
	locks *keymutex.KeyMutex

	mu      sync.Mutex
	tripped bool
}

// AdapterOptions configure an Adapter. Namespace and Store are required.
type AdapterOptions struct {
	Namespace string
	Store     store.Store
	Cache     memcache.Cache // nil => bounded LRU with default caps
	Logger    Logger         // nil => NopLogger
	Hooks     Hooks          // nil => NopHooks
}

func NewAdapter(opts AdapterOptions) (*Adapter, error) {
	if opts.Namespace == "" {
		return nil, fmt.Errorf("duracache: namespace is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("duracache: store is required")
	}
	a := &Adapter{
		ns:    opts.Namespace,
		store: opts.Store,
		cache: opts.Cache,
		locks: keymutex.New(),
	}
	if a.cache == nil {
		a.cache = memcache.NewLRU(0, 0)
	}
	a.log = coalesce[Logger](opts.Logger, NopLogger{})
	a.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	return a, nil
}

// Namespace reports the namespace this adapter owns.
func (a *Adapter) Namespace() string { return a.ns }

// PersistenceDisabled reports whether the breaker has latched. Once true it
// stays true for the lifetime of the adapter; every operation is then served
// from the in-process cache only.
func (a *Adapter) PersistenceDisabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tripped
}

// GetItem returns the stored value for key, refreshing the cache on a store
// hit and falling back to the cache on a miss or failure.
func (a *Adapter) GetItem(ctx context.Context, key string) ([]byte, bool) {
	k := a.storageKey(key)
	if a.PersistenceDisabled() {
		return a.cache.Get(k)
	}
	v, ok, err := a.store.Get(ctx, k)
	if err != nil {
		a.trip(err)
		return a.cache.Get(k)
	}
	if !ok {
		return a.cache.Get(k)
	}
	a.cache.Set(k, v)
	return v, true
}

// SetItem stores value under key. The cache is updated first so readers see
// the write even when persistence fails. A quota failure runs the recovery
// protocol: clear the key's own slot and retry once, then evict other keys
// largest-first until the write fits. Any non-quota failure trips the
// breaker.
func (a *Adapter) SetItem(ctx context.Context, key string, value []byte) {
	k := a.storageKey(key)
	a.cache.Set(k, value)
	if a.PersistenceDisabled() {
		return
	}

	err := a.store.Set(ctx, k, value)
	if err == nil {
		return
	}
	if !store.IsQuota(err) {
		a.trip(err)
		return
	}

	// the key's stale slot might itself be inflating usage
	a.hooks.QuotaRetry(k)
	a.log.Debug("quota exceeded; clearing slot and retrying", Fields{"key": k})
	_ = a.store.Del(ctx, k)

	err = a.store.Set(ctx, k, value)
	if err == nil {
		return
	}
	if !store.IsQuota(err) {
		a.trip(err)
		return
	}

	if !a.evict(ctx, k, value) {
		a.hooks.EvictionExhausted(k)
		a.log.Warn("eviction exhausted; value retained in cache only", Fields{"key": k})
	}
}

// RemoveItem deletes key from the cache unconditionally and from the store
// unless the breaker has latched. A store failure here is non-fatal to the
// caller; it trips the breaker like any other unexpected failure.
func (a *Adapter) RemoveItem(ctx context.Context, key string) {
	k := a.storageKey(key)
	a.cache.Delete(k)
	if a.PersistenceDisabled() {
		return
	}
	if err := a.store.Del(ctx, k); err != nil {
		a.trip(err)
	}
}

func (a *Adapter) storageKey(key string) string {
	return a.ns + ":" + key
}

func (a *Adapter) trip(err error) {
	a.mu.Lock()
	already := a.tripped
	a.tripped = true
	a.mu.Unlock()
	if already {
		return
	}
	a.hooks.BreakerTripped(a.ns, err)
	a.log.Warn("store unavailable; persistence disabled for namespace", Fields{"namespace": a.ns, "err": err})
}

// lockKey serializes binding load/save cycles on one storage key.
func (a *Adapter) lockKey(key string) func() {
	k := a.storageKey(key)
	a.locks.Lock(k)
	return func() { a.locks.Unlock(k) }
}
