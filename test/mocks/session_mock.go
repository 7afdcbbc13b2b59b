package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

// MockSessionService implements ports.SessionService with a settable
// current session.
type MockSessionService struct {
	mu      sync.RWMutex
	session *domain.Session

	// Returned by Login when set.
	LoginSession *domain.Session
	LoginError   error
	LogoutError  error

	LoginCalls  []domain.Credentials
	LogoutCalls int
}

var _ ports.SessionService = (*MockSessionService)(nil)

func NewMockSessionService(current *domain.Session) *MockSessionService {
	return &MockSessionService{session: current}
}

// Set replaces the current session; nil signs out.
func (m *MockSessionService) Set(s *domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
}

func (m *MockSessionService) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls = append(m.LoginCalls, creds)
	if m.LoginError != nil {
		return nil, m.LoginError
	}
	if m.LoginSession == nil {
		return nil, domain.ErrInvalidCredentials
	}
	s := *m.LoginSession
	m.session = &s
	return &s, nil
}

func (m *MockSessionService) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogoutCalls++
	m.session = nil
	return m.LogoutError
}

func (m *MockSessionService) Current() (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return domain.Session{}, false
	}
	return *m.session, true
}
