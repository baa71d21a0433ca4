package kv

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. It backs deployments without Redis and
// doubles as the test substrate for quota scenarios: when MaxBytes is set,
// writes that would push the total size of keys plus values past the limit
// fail with ErrQuotaExceeded.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	used     int
	maxBytes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// NewBoundedMemoryStore returns a MemoryStore that rejects writes once the
// combined size of keys and values would exceed maxBytes.
func NewBoundedMemoryStore(maxBytes int) *MemoryStore {
	return &MemoryStore{data: make(map[string]string), maxBytes: maxBytes}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.used + len(key) + len(value)
	if prev, ok := s.data[key]; ok {
		next -= len(key) + len(prev)
	}
	if s.maxBytes > 0 && next > s.maxBytes {
		return ErrQuotaExceeded
	}

	s.data[key] = value
	s.used = next
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.data[key]; ok {
		s.used -= len(key) + len(prev)
		delete(s.data, key)
	}
	return nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Len reports the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
