package memory

import "sync"

// keyedStore is a map of independently lockable entries. The outer lock only
// guards map membership and is never held while an entry is locked, so
// operations on different keys never contend.
type keyedStore[T any] struct {
	mu      sync.RWMutex
	entries map[string]*keyedEntry[T]
}

type keyedEntry[T any] struct {
	mu    sync.Mutex
	value T
}

func newKeyedStore[T any]() *keyedStore[T] {
	return &keyedStore[T]{entries: make(map[string]*keyedEntry[T])}
}

func (s *keyedStore[T]) get(key string) (*keyedEntry[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	return entry, ok
}

// getOrCreate returns the entry for key, creating it with newValue if absent.
func (s *keyedStore[T]) getOrCreate(key string, newValue func() T) *keyedEntry[T] {
	if entry, ok := s.get(key); ok {
		return entry
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[key]; ok {
		return entry
	}
	entry := &keyedEntry[T]{value: newValue()}
	s.entries[key] = entry
	return entry
}

// create inserts a new entry, reporting false if the key already exists.
func (s *keyedStore[T]) create(key string, value T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return false
	}
	s.entries[key] = &keyedEntry[T]{value: value}
	return true
}

func (s *keyedStore[T]) delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

func (s *keyedStore[T]) keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys
}

func (s *keyedStore[T]) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*keyedEntry[T])
}

// update runs fn on the entry's value under its lock. fn must validate before
// mutating so a failed update leaves the value untouched.
func update[T any, R any](entry *keyedEntry[T], fn func(T) (R, error)) (R, error) {
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.value)
}
