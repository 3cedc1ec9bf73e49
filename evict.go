package duracache

import (
	"context"
	"sort"

	"github.com/unkn0wn-root/duracache/store"
)

// evict frees room for a write that failed on quota by removing other keys
// in this adapter's namespace, largest first, retrying the write after each
// removal. Largest-first maximizes the chance a single removal frees enough
// room, so the fewest unrelated keys are destroyed. Returns true when the
// write eventually succeeded.
func (a *Adapter) evict(ctx context.Context, storageKey string, value []byte) bool {
	keys, err := a.store.Keys(ctx, a.ns+":")
	if err != nil {
		a.trip(err)
		return false
	}

	type candidate struct {
		key  string
		size int
	}
	cands := make([]candidate, 0, len(keys))
	for _, k := range keys {
		if k == storageKey {
			continue
		}
		size, err := a.store.Size(ctx, k)
		if err != nil {
			size = 0 // still evictable, just ordered last
		}
		cands = append(cands, candidate{key: k, size: size})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].size > cands[j].size })

	for _, c := range cands {
		if err := a.store.Del(ctx, c.key); err != nil {
			a.trip(err)
			return false
		}
		a.cache.Delete(c.key)
		a.hooks.EvictionFreed(storageKey, c.key, c.size)
		a.log.Debug("evicted entry to free quota", Fields{"victim": c.key, "size": c.size, "for": storageKey})

		err := a.store.Set(ctx, storageKey, value)
		if err == nil {
			return true
		}
		if !store.IsQuota(err) {
			a.trip(err)
			return false
		}
	}
	return false
}
