// Package storage is the durable client-state port: a small key-value store
// the cart and the shipping-form draft snapshot into after every mutation.
// Callers treat it as best-effort; a missing or failing store degrades the
// session to in-memory only.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Port is the persistence port. Load reports whether the key existed;
// Save failures are reported but callers are expected to swallow them.
type Port interface {
	Load(key string) ([]byte, bool)
	Save(key string, value []byte) error
}

// memoryStore is an in-memory Port, used in tests and as the degraded mode
// when no storage directory is configured.
type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an in-memory store.
func NewMemory() Port {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Load(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true
}

func (s *memoryStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

// fileStore keeps one file per key under a directory.
type fileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates a file-backed store rooted at dir, creating it if needed.
func NewFile(dir string) (Port, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) Load(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *fileStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(key), value, 0o644); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// path maps a key to a file name, replacing separators so keys like
// "konaseema_cart_v1:sess-1" stay inside the storage dir.
func (s *fileStore) path(key string) string {
	name := strings.NewReplacer("/", "_", string(filepath.Separator), "_", ":", "_").Replace(key)
	return filepath.Join(s.dir, name+".json")
}
