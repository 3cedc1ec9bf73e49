package duracache

import (
	"bytes"
	"context"
	"fmt"

	"github.com/unkn0wn-root/duracache/codec"
)

// Binding is the load/save surface for one persisted value. Load reconciles
// the stored record against the defaults snapshot (legacy-key migration,
// optional payload migration, defaults-shaped merge, self-heal rewrite);
// Save encodes and writes through the adapter.
//
// Load and Save serialize per storage key, so overlapping cycles on the
// same binding cannot interleave their store reads and writes.
type Binding[V any] struct {
	adapter    *Adapter
	key        string
	legacy     []string
	migrate    func(any) any
	codec      codec.Codec[V]
	structural codec.Structural

	defaults    any // structural snapshot, never mutated after bind
	defaultsVal V
	hasDefaults bool // false when defaults are not structurally representable

	log   Logger
	hooks Hooks
}

func newBinding[V any](opts Options[V]) (*Binding[V], error) {
	if opts.Adapter == nil {
		return nil, fmt.Errorf("duracache: adapter is required")
	}
	if opts.Key == "" {
		return nil, fmt.Errorf("duracache: key is required")
	}

	b := &Binding[V]{
		adapter:     opts.Adapter,
		key:         opts.KeyPrefix + opts.Key,
		legacy:      opts.LegacyKeys,
		migrate:     opts.Migrate,
		defaultsVal: opts.Defaults,
	}
	b.codec = opts.Codec
	if b.codec == nil {
		b.codec = codec.JSON[V]{}
	}
	if s, ok := b.codec.(codec.Structural); ok {
		b.structural = s
	} else {
		b.structural = codec.AnyJSON{}
	}
	b.log = coalesce[Logger](opts.Logger, NopLogger{})
	b.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	// Snapshot the default schema as an independent structural copy. A
	// codec whose output is not structurally parseable (raw bytes, proto)
	// yields a binding that passes records through without merging.
	if raw, err := b.codec.Encode(opts.Defaults); err == nil {
		if snap, err := b.structural.DecodeAny(raw); err == nil {
			b.defaults = snap
			b.hasDefaults = true
		}
	}
	return b, nil
}

// Key reports the full storage key, including any session prefix.
func (b *Binding[V]) Key() string { return b.key }

// Load reads, migrates and normalizes the bound value. found is false when
// no record exists at the current key or any legacy key; the caller's own
// default then applies untouched. The returned error concerns only codec
// mismatches: store failures degrade silently per the adapter's contract.
func (b *Binding[V]) Load(ctx context.Context) (v V, found bool, err error) {
	unlock := b.adapter.lockKey(b.key)
	defer unlock()

	raw, ok := b.adapter.GetItem(ctx, b.key)
	if ok {
		return b.normalize(ctx, raw)
	}

	for _, lk := range b.legacy {
		lraw, lok := b.adapter.GetItem(ctx, lk)
		if !lok {
			continue
		}
		// one-shot, destructive migration to the current key
		b.adapter.SetItem(ctx, b.key, lraw)
		b.adapter.RemoveItem(ctx, lk)
		b.hooks.LegacyMigrated(b.key, lk)
		b.log.Debug("migrated legacy entry", Fields{"key": b.key, "legacy": lk})
		return b.normalize(ctx, lraw)
	}

	return b.defaultsVal, false, nil
}

// Save writes v through the adapter. The only possible error is an encode
// failure; durability degradation is not observable here.
func (b *Binding[V]) Save(ctx context.Context, v V) error {
	raw, err := b.codec.Encode(v)
	if err != nil {
		return &EncodeError{Key: b.key, Err: err}
	}
	unlock := b.adapter.lockKey(b.key)
	defer unlock()
	b.adapter.SetItem(ctx, b.key, raw)
	return nil
}

// normalize runs the parse/migrate/merge/maybe-rewrite sequence on a record
// already copied to the binding's current key.
func (b *Binding[V]) normalize(ctx context.Context, raw []byte) (V, bool, error) {
	var zero V

	parsed, perr := b.structural.DecodeAny(raw)
	if perr != nil {
		// opaque legacy plain value: no merge, return as-is
		v, derr := b.codec.Decode(raw)
		if derr != nil {
			b.hooks.MalformedRecord(b.key)
			b.log.Warn("stored record unreadable; using defaults", Fields{"key": b.key, "err": derr})
			return b.defaultsVal, false, nil
		}
		return v, true, nil
	}

	if b.migrate != nil {
		parsed = b.migrate(parsed)
	}
	merged := parsed
	if b.hasDefaults {
		merged = Merge(b.defaults, parsed)
	}

	out, err := b.structural.EncodeAny(merged)
	if err != nil {
		return zero, false, &EncodeError{Key: b.key, Err: err}
	}
	if !bytes.Equal(out, raw) {
		// self-heal: upgrade the stored record in place
		b.adapter.SetItem(ctx, b.key, out)
		b.hooks.SelfHealRewrite(b.key)
		b.log.Debug("rewrote record after normalization", Fields{"key": b.key})
	}

	v, err := b.codec.Decode(out)
	if err != nil {
		return zero, false, &DecodeError{Key: b.key, Err: err}
	}
	return v, true, nil
}
