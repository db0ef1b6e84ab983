package session

import (
	"context"
	"sync"
	"time"
)

// Store persists session records by id.
type Store interface {
	Load(ctx context.Context, id string) (Data, bool, error)
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error
	// Replace overwrites an existing record and reports whether one was there.
	Replace(ctx context.Context, id string, data Data, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data    Data
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Records vanish on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, id string) (Data, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return Data{}, false, nil
	}
	if !s.now().Before(entry.expires) {
		delete(s.entries, id)
		return Data{}, false, nil
	}
	return entry.data.clone(), true, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, data Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{data: data.clone(), expires: s.now().Add(ttl)}
	s.sweep()
	return nil
}

func (s *MemoryStore) Replace(_ context.Context, id string, data Data, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || !s.now().Before(entry.expires) {
		return false, nil
	}
	s.entries[id] = memoryEntry{data: data.clone(), expires: s.now().Add(ttl)}
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Len returns the number of stored records, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// sweep drops expired entries. Caller holds mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	for id, entry := range s.entries {
		if !now.Before(entry.expires) {
			delete(s.entries, id)
		}
	}
}
