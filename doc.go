// Package duracache implements a persistent cache and state-normalization
// layer for client-side application state. Values live in a capacity-limited
// host key-value store behind a write-through in-process cache; callers are
// shielded from the store's failure modes, and stored records are reconciled
// against the application's current default schema on every load.
//
// Components:
//   - store.Store: the host persistent store contract (memory, file, Redis).
//   - memcache.Cache: bounded in-process cache. The default LRU survives
//     store outages and absorbs quota-exceeded writes.
//   - Adapter: get/set/remove over one namespace, composing cache, quota
//     recovery (remove+retry, then largest-first eviction) and a breaker
//     latch that stops calling a store that proved unavailable.
//   - Resolver: global/workspace/session namespace derivation.
//   - Binding[V]: per-value load/save with legacy-key migration, optional
//     payload migration and a defaults-shaped merge. Serialization is
//     handled by a pluggable codec.Codec[V].
//
// Keys:
//
//	<namespace>:<key>                - workspace and global entries
//	<namespace>:session:<id>:<key>   - session-scoped entries
//
// Degradation model: this layer never surfaces store failures to callers.
// A quota failure is recovered by eviction; any other store failure trips
// the adapter's breaker, after which all operations are served from the
// in-process cache only. The single observable effect of sustained failure
// is that state stops surviving process restarts.
package duracache
