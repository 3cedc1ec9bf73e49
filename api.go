package duracache

import (
	"github.com/unkn0wn-root/duracache/codec"
)

// Options tune one persisted binding. Only Adapter and Key are required;
// others have sensible defaults.
type Options[V any] struct {
	// Required
	Adapter *Adapter // bindings sharing a namespace must share the adapter
	Key     string   // current storage key, unique within the namespace

	Defaults V // schema source of truth; snapshotted once at bind time

	// KeyPrefix nests the key inside the namespace, e.g. the session prefix
	// from Resolver.Session. Applied to Key but not to LegacyKeys.
	KeyPrefix string

	// LegacyKeys are prior storage locations, checked in order when Key has
	// no value yet. Migration out of a legacy key is one-shot and deletes
	// the legacy entry.
	LegacyKeys []string

	// Migrate is an optional one-time transform applied to a parsed legacy
	// or current payload before it is merged against the defaults.
	Migrate func(raw any) any

	Codec  codec.Codec[V] // nil => codec.JSON[V]
	Logger Logger         // nil => NopLogger
	Hooks  Hooks          // nil => NopHooks
}

// Bind attaches a value to its storage location. The returned Binding
// reconciles stored data against Defaults on every Load and writes through
// the adapter on Save.
func Bind[V any](opts Options[V]) (*Binding[V], error) {
	return newBinding[V](opts)
}
