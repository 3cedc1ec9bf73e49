// Package file provides a file-per-key Store rooted at a directory, the
// desktop-host analogue of named browser storage. Keys are escaped into
// filenames; writes go through a temp file and rename. An optional byte
// budget turns oversized writes into *store.QuotaError.
package file

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/unkn0wn-root/duracache/store"
)

type Store struct {
	mu       sync.Mutex
	dir      string
	maxBytes int64
}

var _ store.Store = (*Store)(nil)

type Config struct {
	Dir      string // required
	MaxBytes int64  // total value bytes; 0 = unlimited
}

func New(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("file store: dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: cfg.Dir, maxBytes: cfg.MaxBytes}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, url.QueryEscape(key))
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxBytes > 0 {
		used, err := s.usedExcept(key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > s.maxBytes {
			return &store.QuotaError{
				Store: "file",
				Err:   fmt.Errorf("%d bytes over a %d byte budget", used+int64(len(value))-s.maxBytes, s.maxBytes),
			}
		}
	}

	tmp, err := os.CreateTemp(s.dir, ".write-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *Store) Del(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".write-") {
			continue
		}
		key, err := url.QueryUnescape(e.Name())
		if err != nil {
			continue // foreign file
		}
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) Size(_ context.Context, key string) (int, error) {
	fi, err := os.Stat(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int(fi.Size()), nil
}

func (s *Store) Close(context.Context) error { return nil }

func (s *Store) usedExcept(key string) (int64, error) {
	skip := url.QueryEscape(key)
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, e := range ents {
		if e.IsDir() || e.Name() == skip || strings.HasPrefix(e.Name(), ".write-") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		total += fi.Size()
	}
	return total, nil
}
