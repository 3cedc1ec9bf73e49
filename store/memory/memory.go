// Package memory provides an in-process Store with an optional byte budget.
// It backs tests and hosts without durable storage; a full budget surfaces
// as a *store.QuotaError, exercising the same recovery path a constrained
// host store would.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/unkn0wn-root/duracache/store"
)

type Store struct {
	mu       sync.RWMutex
	m        map[string][]byte
	used     int
	maxBytes int
}

var _ store.Store = (*Store)(nil)

type Config struct {
	MaxBytes int // total value bytes; 0 = unlimited
}

func New(cfg Config) *Store {
	return &Store{
		m:        make(map[string][]byte),
		maxBytes: cfg.MaxBytes,
	}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	v, ok := s.m[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.used - len(s.m[key]) + len(value)
	if s.maxBytes > 0 && next > s.maxBytes {
		return &store.QuotaError{
			Store: "memory",
			Err:   fmt.Errorf("%d bytes over a %d byte budget", next-s.maxBytes, s.maxBytes),
		}
	}
	s.m[key] = append([]byte(nil), value...)
	s.used = next
	return nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	s.used -= len(s.m[key])
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	s.mu.RUnlock()
	sort.Strings(out)
	return out, nil
}

func (s *Store) Size(_ context.Context, key string) (int, error) {
	s.mu.RLock()
	n := len(s.m[key])
	s.mu.RUnlock()
	return n, nil
}

func (s *Store) Close(context.Context) error { return nil }

// Used reports the current aggregate value bytes. Handy in tests.
func (s *Store) Used() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
