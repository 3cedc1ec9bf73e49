package duracache

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the adapter and bindings
// call them inline on hot paths. Wrap with hooks/async to offload.
type Hooks interface {
	// The store rejected a write for capacity and the remove+retry path ran.
	QuotaRetry(storageKey string)

	// An eviction pass removed victim (size bytes) to make room for storageKey.
	EvictionFreed(storageKey, victim string, size int)

	// Every evictable candidate was removed and the write still failed.
	// The value now lives in the in-process cache only.
	EvictionExhausted(storageKey string)

	// A non-quota store failure latched the breaker for this namespace.
	// All further store calls on the adapter are skipped.
	BreakerTripped(namespace string, err error)

	// A value was moved from a legacy key to its current key on load.
	LegacyMigrated(key, legacyKey string)

	// A loaded record was rewritten in place after merging against the
	// current defaults changed its serialized form.
	SelfHealRewrite(key string)

	// A stored record was neither structurally parseable nor decodable by
	// the binding's codec; it was treated as missing.
	MalformedRecord(key string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) QuotaRetry(string)                 {}
func (NopHooks) EvictionFreed(string, string, int) {}
func (NopHooks) EvictionExhausted(string)          {}
func (NopHooks) BreakerTripped(string, error)      {}
func (NopHooks) LegacyMigrated(string, string)     {}
func (NopHooks) SelfHealRewrite(string)            {}
func (NopHooks) MalformedRecord(string)            {}
