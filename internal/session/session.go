// Package session provides the scoped key-value slot the builder persists its
// state into. Values are opaque blobs; callers own the encoding.
package session

import (
	"fmt"
	"regexp"
	"sync"
)

// Store is a key-value slot with session lifetime
type Store interface {
	// Load returns the blob under key and whether it exists
	Load(key string) ([]byte, bool, error)
	// Save replaces the blob under key
	Save(key string, value []byte) error
	// Clear removes key; clearing a missing key is not an error
	Clear(key string) error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func checkKey(key string) error {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid session key %q", key)
	}
	return nil
}

// MemoryStore keeps values in process memory
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryStore) Save(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
