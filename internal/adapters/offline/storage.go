package offline

import (
	"net/http"
	"sort"
	"sync"
)

// Entry is a cached response.
type Entry struct {
	Status int
	Header http.Header
	Body   []byte
}

func (e Entry) clone() Entry {
	body := make([]byte, len(e.Body))
	copy(body, e.Body)
	return Entry{Status: e.Status, Header: e.Header.Clone(), Body: body}
}

// Storage holds named partitions of cached responses keyed by request path.
type Storage interface {
	Put(partition, key string, e Entry)
	Get(partition, key string) (Entry, bool)
	Partitions() []string
	Delete(partition string) bool
}

type MemoryStorage struct {
	mu    sync.RWMutex
	parts map[string]map[string]Entry
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{parts: make(map[string]map[string]Entry)}
}

func (s *MemoryStorage) Put(partition, key string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parts[partition]
	if !ok {
		p = make(map[string]Entry)
		s.parts[partition] = p
	}
	p[key] = e.clone()
}

func (s *MemoryStorage) Get(partition, key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.parts[partition][key]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Partitions returns partition names in sorted order.
func (s *MemoryStorage) Partitions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.parts))
	for name := range s.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create makes an empty partition if it does not exist yet.
func (s *MemoryStorage) Create(partition string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parts[partition]; !ok {
		s.parts[partition] = make(map[string]Entry)
	}
}

func (s *MemoryStorage) Delete(partition string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parts[partition]; !ok {
		return false
	}
	delete(s.parts, partition)
	return true
}
