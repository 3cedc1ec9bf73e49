// Package asynchook decouples hook callbacks from the adapter's hot paths.
// Events are queued to worker goroutines; when the queue is full they are
// dropped rather than blocking a storage operation.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{EvictionEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	adapter, _ := duracache.NewAdapter(duracache.AdapterOptions{
//	    Namespace: ns,
//	    Store:     st,
//	    Hooks:     hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/duracache"
)

type Hooks struct {
	inner duracache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ duracache.Hooks = (*Hooks)(nil)

func New(inner duracache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) QuotaRetry(k string)        { h.try(func() { h.inner.QuotaRetry(k) }) }
func (h *Hooks) EvictionExhausted(k string) { h.try(func() { h.inner.EvictionExhausted(k) }) }
func (h *Hooks) SelfHealRewrite(k string)   { h.try(func() { h.inner.SelfHealRewrite(k) }) }
func (h *Hooks) MalformedRecord(k string)   { h.try(func() { h.inner.MalformedRecord(k) }) }
func (h *Hooks) EvictionFreed(k, victim string, size int) {
	h.try(func() { h.inner.EvictionFreed(k, victim, size) })
}
func (h *Hooks) BreakerTripped(ns string, err error) {
	h.try(func() { h.inner.BreakerTripped(ns, err) })
}
func (h *Hooks) LegacyMigrated(key, legacyKey string) {
	h.try(func() { h.inner.LegacyMigrated(key, legacyKey) })
}
