package sessionstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

// MemoryStore persists for the lifetime of the process only. Used when no
// Redis address is configured.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

var _ ports.SessionPersister = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = payload
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.Lock()
	payload := s.data
	s.mu.Unlock()
	if payload == nil {
		return nil, nil
	}
	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}
