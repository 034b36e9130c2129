package cache

import (
	"sync"

	"github.com/google/uuid"
)

// Entry is one uploaded file: its name and raw bytes.
type Entry struct {
	Name    string
	Content []byte
}

// Store is a bounded, concurrency-safe cache of uploaded file sets keyed by
// opaque tokens. Insertion order is tracked so eviction is oldest-first.
type Store struct {
	mu       sync.Mutex
	capacity int
	order    []string
	sets     map[string][]Entry
}

// NewStore creates a store holding at most capacity file sets. A capacity
// below one falls back to one.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		capacity: capacity,
		sets:     make(map[string][]Entry),
	}
}

// Put stores a file set and returns its token. The oldest entry is evicted
// first once the capacity bound is reached.
func (s *Store) Put(files []Entry) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.sets, oldest)
	}

	token := uuid.NewString()
	s.sets[token] = files
	s.order = append(s.order, token)
	return token
}

// Claim removes and returns the file set for the token. The removal is
// atomic with the lookup: a second claim on the same token always misses.
func (s *Store) Claim(token string) ([]Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, ok := s.sets[token]
	if !ok {
		return nil, false
	}
	delete(s.sets, token)
	for i, k := range s.order {
		if k == token {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return files, true
}

// Len returns the number of cached file sets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sets)
}
