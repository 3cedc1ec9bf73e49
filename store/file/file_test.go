package file

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/unkn0wn-root/duracache/store"
)

func newTestStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()
	s, err := New(Config{Dir: t.TempDir(), MaxBytes: maxBytes})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// TestFileRoundTrip verifies values survive the filename escaping and come
// back byte-for-byte.
func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 0)

	key := "ws-proj-abc:session:s1:prefs" // colons must escape cleanly
	v := []byte(`{"count":1}`)
	if err := s.Set(ctx, key, v); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok || !bytes.Equal(got, v) {
		t.Fatalf("Get = %q, %v, %v", got, ok, err)
	}

	if err := s.Del(ctx, key); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := s.Get(ctx, key); ok {
		t.Fatalf("deleted key still present")
	}
	if err := s.Del(ctx, key); err != nil {
		t.Fatalf("Del of missing key: %v", err)
	}
}

// TestFileKeysAndSize verifies enumeration is scoped by prefix and sizes
// come from the filesystem.
func TestFileKeysAndSize(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 0)
	s.Set(ctx, "ns:a", []byte("12345"))
	s.Set(ctx, "ns:b", []byte("1"))
	s.Set(ctx, "other:c", []byte("1"))

	keys, err := s.Keys(ctx, "ns:")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"ns:a", "ns:b"}) {
		t.Fatalf("Keys = %v", keys)
	}
	if n, _ := s.Size(ctx, "ns:a"); n != 5 {
		t.Fatalf("Size = %d, want 5", n)
	}
	if n, _ := s.Size(ctx, "missing"); n != 0 {
		t.Fatalf("Size of missing = %d, want 0", n)
	}
}

// TestFileQuota verifies the byte budget rejects writes with a classified
// quota error and replacement excludes the key's own slot.
func TestFileQuota(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 10)

	if err := s.Set(ctx, "a", bytes.Repeat([]byte("x"), 8)); err != nil {
		t.Fatalf("Set within budget: %v", err)
	}
	err := s.Set(ctx, "b", []byte("xxx"))
	if err == nil || !store.IsQuota(err) {
		t.Fatalf("over-budget Set: %v", err)
	}
	if err := s.Set(ctx, "a", bytes.Repeat([]byte("y"), 10)); err != nil {
		t.Fatalf("replacement within budget: %v", err)
	}
}
