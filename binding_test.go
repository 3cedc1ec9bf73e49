package duracache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/unkn0wn-root/duracache/codec"
	"github.com/unkn0wn-root/duracache/store/memory"
)

type prefs struct {
	Count int    `json:"count"`
	Theme string `json:"theme"`
}

func newBindingFixture(t *testing.T, st *memory.Store, hooks Hooks, opt func(*Options[prefs])) (*Adapter, *Binding[prefs]) {
	t.Helper()
	a, err := NewAdapter(AdapterOptions{Namespace: "ws", Store: st, Hooks: hooks})
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	opts := Options[prefs]{
		Adapter:  a,
		Key:      "prefs",
		Defaults: prefs{Count: 0, Theme: "dark"},
		Hooks:    hooks,
	}
	if opt != nil {
		opt(&opts)
	}
	b, err := Bind[prefs](opts)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	return a, b
}

// ==============================
// Load paths
// ==============================

// TestBindingLoadAbsent verifies a missing record reports not-found and the
// caller's defaults apply untouched.
func TestBindingLoadAbsent(t *testing.T) {
	ctx := context.Background()
	st := memory.New(memory.Config{})
	_, b := newBindingFixture(t, st, nil, nil)

	v, found, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Fatalf("found = true for empty store")
	}
	if v != (prefs{Count: 0, Theme: "dark"}) {
		t.Fatalf("defaults not returned: %+v", v)
	}
	if keys, _ := st.Keys(ctx, ""); len(keys) != 0 {
		t.Fatalf("load of absent value must not write: %v", keys)
	}
}

// TestBindingLegacyMigration verifies the one-shot migration: the legacy
// entry is copied, merged against defaults, deleted, and a second load is
// idempotent.
func TestBindingLegacyMigration(t *testing.T) {
	ctx := context.Background()
	st := memory.New(memory.Config{})
	if err := st.Set(ctx, "ws:old-prefs", []byte(`{"count":5}`)); err != nil {
		t.Fatal(err)
	}
	hooks := &recordingHooks{}
	_, b := newBindingFixture(t, st, hooks, func(o *Options[prefs]) {
		o.LegacyKeys = []string{"old-prefs"}
	})

	v, found, err := b.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: %v, found=%v", err, found)
	}
	if v != (prefs{Count: 5, Theme: "dark"}) {
		t.Fatalf("merged value = %+v", v)
	}
	if _, ok, _ := st.Get(ctx, "ws:old-prefs"); ok {
		t.Fatalf("legacy entry must be deleted")
	}
	raw, ok, _ := st.Get(ctx, "ws:prefs")
	if !ok {
		t.Fatalf("current key not written")
	}
	var stored map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("stored record not JSON: %v", err)
	}
	if stored["count"] != 5.0 || stored["theme"] != "dark" {
		t.Fatalf("stored record = %v", stored)
	}
	if hooks.migrated != 1 || hooks.rewrites != 1 {
		t.Fatalf("migrated=%d rewrites=%d, want 1/1", hooks.migrated, hooks.rewrites)
	}

	// second load: no legacy key touched, value unchanged, no rewrite
	v2, found, err := b.Load(ctx)
	if err != nil || !found || v2 != v {
		t.Fatalf("second Load: %+v, found=%v, err=%v", v2, found, err)
	}
	if hooks.migrated != 1 || hooks.rewrites != 1 {
		t.Fatalf("second load not idempotent: migrated=%d rewrites=%d", hooks.migrated, hooks.rewrites)
	}
}

// TestBindingLegacyOrder verifies legacy keys are consulted in declared
// order and only the first hit migrates.
func TestBindingLegacyOrder(t *testing.T) {
	ctx := context.Background()
	st := memory.New(memory.Config{})
	st.Set(ctx, "ws:older", []byte(`{"count":1}`))
	st.Set(ctx, "ws:oldest", []byte(`{"count":2}`))
	_, b := newBindingFixture(t, st, nil, func(o *Options[prefs]) {
		o.LegacyKeys = []string{"older", "oldest"}
	})

	v, _, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v.Count != 1 {
		t.Fatalf("count = %d, want value from first legacy key", v.Count)
	}
	if _, ok, _ := st.Get(ctx, "ws:older"); ok {
		t.Fatalf("first legacy key should be deleted")
	}
	if _, ok, _ := st.Get(ctx, "ws:oldest"); !ok {
		t.Fatalf("second legacy key must stay untouched")
	}
}

// TestBindingSelfHealPreservesExtras verifies schema upgrade in place:
// default fields appear, unknown stored fields survive.
func TestBindingSelfHealPreservesExtras(t *testing.T) {
	ctx := context.Background()
	st := memory.New(memory.Config{})
	st.Set(ctx, "ws:prefs", []byte(`{"count":2,"legacyFlag":true}`))
	hooks := &recordingHooks{}
	_, b := newBindingFixture(t, st, hooks, nil)

	v, found, err := b.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: %v, found=%v", err, found)
	}
	if v != (prefs{Count: 2, Theme: "dark"}) {
		t.Fatalf("value = %+v", v)
	}

	raw, _, _ := st.Get(ctx, "ws:prefs")
	var stored map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatal(err)
	}
	if stored["legacyFlag"] != true {
		t.Fatalf("extra field dropped: %v", stored)
	}
	if stored["theme"] != "dark" {
		t.Fatalf("default field not filled in: %v", stored)
	}
	if hooks.rewrites != 1 {
		t.Fatalf("rewrites = %d, want 1", hooks.rewrites)
	}
}

// TestBindingMigrateTransform verifies the optional payload transform runs
// before merging.
func TestBindingMigrateTransform(t *testing.T) {
	ctx := context.Background()
	st := memory.New(memory.Config{})
	st.Set(ctx, "ws:prefs", []byte(`{"cnt":7}`))
	_, b := newBindingFixture(t, st, nil, func(o *Options[prefs]) {
		o.Migrate = func(raw any) any {
			m, ok := raw.(map[string]any)
			if !ok {
				return raw
			}
			if cnt, ok := m["cnt"]; ok {
				m["count"] = cnt
				delete(m, "cnt")
			}
			return m
		}
	})

	v, _, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v != (prefs{Count: 7, Theme: "dark"}) {
		t.Fatalf("value = %+v", v)
	}
}

// TestBindingPlainStringPassthrough verifies an unparseable record is
// returned unchanged through a string codec, with no merge attempted.
func TestBindingPlainStringPassthrough(t *testing.T) {
	ctx := context.Background()
	st := memory.New(memory.Config{})
	st.Set(ctx, "ws:motd", []byte("hello world"))
	a, err := NewAdapter(AdapterOptions{Namespace: "ws", Store: st})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Bind[string](Options[string]{
		Adapter: a,
		Key:     "motd",
		Codec:   codec.String{},
	})
	if err != nil {
		t.Fatal(err)
	}

	v, found, err := b.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: %v, found=%v", err, found)
	}
	if v != "hello world" {
		t.Fatalf("value = %q", v)
	}
	raw, _, _ := st.Get(ctx, "ws:motd")
	if string(raw) != "hello world" {
		t.Fatalf("record rewritten: %q", raw)
	}
}

// TestBindingSessionScope verifies session bindings nest keys under a
// session prefix within the shared workspace namespace.
func TestBindingSessionScope(t *testing.T) {
	ctx := context.Background()
	st := memory.New(memory.Config{})
	a, err := NewAdapter(AdapterOptions{Namespace: "ws", Store: st})
	if err != nil {
		t.Fatal(err)
	}
	var r Resolver
	_, prefix := r.Session("/home/u/project", "s1")
	b, err := Bind[prefs](Options[prefs]{
		Adapter:   a,
		Key:       "prefs",
		KeyPrefix: prefix,
		Defaults:  prefs{Theme: "dark"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Save(ctx, prefs{Count: 3, Theme: "light"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok, _ := st.Get(ctx, "ws:session:s1:prefs"); !ok {
		keys, _ := st.Keys(ctx, "")
		t.Fatalf("session key missing; store holds %v", keys)
	}
}

// ==============================
// Save / round trip
// ==============================

// TestBindingSaveLoadRoundTrip verifies a saved value loads back equal.
func TestBindingSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := memory.New(memory.Config{})
	_, b := newBindingFixture(t, st, nil, nil)

	in := prefs{Count: 42, Theme: "light"}
	if err := b.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, found, err := b.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: %v, found=%v", err, found)
	}
	if out != in {
		t.Fatalf("round trip: %+v != %+v", out, in)
	}
}

// TestBindingLoadSurvivesBrokenStore verifies a saved value remains loadable
// from cache after the store dies mid-process.
func TestBindingLoadSurvivesBrokenStore(t *testing.T) {
	ctx := context.Background()
	st := newFlakyStore()
	a, err := NewAdapter(AdapterOptions{Namespace: "ws", Store: st})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Bind[prefs](Options[prefs]{
		Adapter:  a,
		Key:      "prefs",
		Defaults: prefs{Theme: "dark"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := b.Save(ctx, prefs{Count: 9, Theme: "dim"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	st.getErr = errors.New("host revoked storage")

	v, found, err := b.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: %v, found=%v", err, found)
	}
	if v != (prefs{Count: 9, Theme: "dim"}) {
		t.Fatalf("value = %+v", v)
	}
	if !a.PersistenceDisabled() {
		t.Fatalf("breaker should be tripped after the failed read")
	}
}
