package keymutex

import (
	"sync"
	"testing"
)

// TestMutualExclusion verifies concurrent holders of one key serialize.
func TestMutualExclusion(t *testing.T) {
	m := New()
	const workers = 32
	const rounds = 200

	var counter int // intentionally unsynchronized; the lock must protect it
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				m.Lock("k")
				counter++
				m.Unlock("k")
			}
		}()
	}
	wg.Wait()

	if counter != workers*rounds {
		t.Fatalf("counter = %d, want %d", counter, workers*rounds)
	}
}

// TestEntriesReleased verifies the per-key entries are dropped once no
// holder remains.
func TestEntriesReleased(t *testing.T) {
	m := New()
	m.Lock("a")
	m.Lock("b")
	m.Unlock("a")
	m.Unlock("b")

	m.mu.Lock()
	n := len(m.entries)
	m.mu.Unlock()
	if n != 0 {
		t.Fatalf("entries leaked: %d", n)
	}
}

// TestIndependentKeys verifies a held key does not block another key.
func TestIndependentKeys(t *testing.T) {
	m := New()
	m.Lock("a")
	done := make(chan struct{})
	go func() {
		m.Lock("b")
		m.Unlock("b")
		close(done)
	}()
	<-done // must complete while "a" is still held
	m.Unlock("a")
}

// TestUnlockUnheldPanics verifies misuse is loud.
func TestUnlockUnheldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Unlock of unheld key did not panic")
		}
	}()
	New().Unlock("nope")
}
