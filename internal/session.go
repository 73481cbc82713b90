package internal

import (
	"context"
	"sync"
	"time"

	"frisbee/services"
)

// MemorySessions keeps per-session stores in process memory. Entries carry an
// expiry marker next to the value; there is no background sweep, an expired
// entry is dropped the next time it is read.
type MemorySessions struct {
	mutex  sync.Mutex
	stores map[string]*memoryStore
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		stores: make(map[string]*memoryStore),
	}
}

func (m *MemorySessions) ForSession(id string) services.SessionStore {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	store, ok := m.stores[id]
	if !ok {
		store = &memoryStore{
			values:  make(map[string]string),
			expires: make(map[string]time.Time),
		}
		m.stores[id] = store
	}
	return store
}

type memoryStore struct {
	mutex   sync.Mutex
	values  map[string]string
	expires map[string]time.Time
}

func (s *memoryStore) Has(_ context.Context, key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cleanup(key)
	_, ok := s.values[key]
	return ok
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cleanup(key)
	value, ok := s.values[key]
	return value, ok
}

func (s *memoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.values[key] = value
	if ttl > 0 {
		s.expires[key] = time.Now().Add(ttl)
	} else {
		delete(s.expires, key)
	}
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.values, key)
	delete(s.expires, key)
	return nil
}

// cleanup removes the value and its marker once the marker is in the past.
// Callers must hold the mutex.
func (s *memoryStore) cleanup(key string) {
	expire, ok := s.expires[key]
	if ok && !expire.After(time.Now()) {
		delete(s.expires, key)
		delete(s.values, key)
	}
}
