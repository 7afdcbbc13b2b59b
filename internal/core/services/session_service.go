package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/logging"
)

type SessionState int

const (
	StateAnonymous SessionState = iota
	StateAuthenticatingStaff
	StateAuthenticatingGuest
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticatingStaff:
		return "authenticating-staff"
	case StateAuthenticatingGuest:
		return "authenticating-guest"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

// DemoConfig gates the offline demo identity. When Enabled, staff login
// with exactly these credentials succeeds while the backend is
// unreachable.
type DemoConfig struct {
	Enabled  bool
	Email    string
	Password string
}

// SessionService holds the single active identity of the client.
type SessionService struct {
	api    ports.HotelAPI
	store  ports.SessionPersister
	tokens ports.TokenInspector
	demo   DemoConfig
	log    zerolog.Logger
	now    func() time.Time

	// persist orders Save and Clear against each other so a login that
	// lost to a logout never leaves a stored session behind.
	persist sync.Mutex

	mu       sync.RWMutex
	state    SessionState
	session  *domain.Session
	gen      uint64
	onLogin  []func(domain.Session)
	onLogout []func()
}

var _ ports.SessionService = (*SessionService)(nil)

func NewSessionService(
	api ports.HotelAPI,
	store ports.SessionPersister,
	tokens ports.TokenInspector,
	demo DemoConfig,
) *SessionService {
	return &SessionService{
		api:    api,
		store:  store,
		tokens: tokens,
		demo:   demo,
		log:    logging.Component("session"),
		now:    time.Now,
	}
}

// OnLogin registers fn to run after every transition to Authenticated,
// including a restore at startup.
func (s *SessionService) OnLogin(fn func(domain.Session)) {
	s.mu.Lock()
	s.onLogin = append(s.onLogin, fn)
	s.mu.Unlock()
}

// OnLogout registers fn to run after every logout.
func (s *SessionService) OnLogout(fn func()) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SessionService) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.session == nil {
		return domain.Session{}, false
	}
	return *s.session, true
}

// Login authenticates creds. Switching identity requires Logout first. A
// Logout while the backend call is in flight cancels the attempt: its
// result is discarded and Login reports a conflict.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	var pending SessionState
	switch c := creds.(type) {
	case domain.StaffCredentials:
		pending = StateAuthenticatingStaff
		if err := validateInput(c); err != nil {
			return nil, err
		}
	case domain.GuestCredentials:
		pending = StateAuthenticatingGuest
		if err := validateInput(c); err != nil {
			return nil, err
		}
	default:
		return nil, domain.NewValidationError("unsupported credentials %T", creds)
	}

	s.mu.Lock()
	if s.state != StateAnonymous {
		state := s.state
		s.mu.Unlock()
		return nil, domain.NewConflictError("session is %s, log out first", state)
	}
	s.state = pending
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	session, err := s.authenticate(ctx, creds)
	if err != nil {
		s.mu.Lock()
		if s.gen == gen {
			s.state = StateAnonymous
			s.session = nil
		}
		s.mu.Unlock()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.log.Info().Str("scope", scopeOf(creds)).Msg("login rejected")
		} else {
			s.log.Warn().Err(err).Str("scope", scopeOf(creds)).Msg("login failed")
		}
		return nil, err
	}

	if session.ExpiresAt.IsZero() && s.tokens != nil && session.Token != "" {
		exp, err := s.tokens.Expiry(session.Token)
		if err != nil {
			s.log.Warn().Err(err).Msg("could not read session token expiry")
		} else {
			session.ExpiresAt = exp
		}
	}

	s.persist.Lock()
	if !s.current(gen) {
		s.persist.Unlock()
		s.log.Info().Str("scope", scopeOf(creds)).Msg("login discarded after logout")
		return nil, domain.NewConflictError("login was cancelled by a logout")
	}
	if err := s.store.Save(ctx, *session); err != nil {
		// The session still works for this process; it just won't survive a restart.
		s.log.Warn().Err(err).Msg("could not persist session")
	}
	hooks, _ := s.activate(gen, *session)
	s.persist.Unlock()

	runLoginHooks(hooks, *session)
	s.log.Info().
		Str("user_id", session.UserID).
		Str("scope", session.ScopeName()).
		Bool("demo", session.Demo).
		Msg("logged in")
	return session, nil
}

func (s *SessionService) authenticate(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	switch c := creds.(type) {
	case domain.StaffCredentials:
		session, err := s.api.AuthenticateStaff(ctx, c)
		if err != nil && s.demoEligible(err, c) {
			s.log.Warn().Err(err).Msg("backend unreachable, using demo identity")
			return s.demoSession(), nil
		}
		return session, err
	case domain.GuestCredentials:
		return s.api.AuthenticateGuest(ctx, c)
	}
	return nil, domain.NewValidationError("unsupported credentials %T", creds)
}

func (s *SessionService) demoEligible(err error, c domain.StaffCredentials) bool {
	if !s.demo.Enabled || c.Email != s.demo.Email || c.Password != s.demo.Password {
		return false
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Kind == domain.KindNetwork || (de.Kind == domain.KindServer && de.Status >= http.StatusInternalServerError)
}

func (s *SessionService) demoSession() *domain.Session {
	return &domain.Session{
		UserID:    "demo-admin",
		Name:      "Demo Administrator",
		Email:     s.demo.Email,
		Scope:     domain.StaffScope{Role: domain.RoleAdmin},
		ExpiresAt: s.now().Add(8 * time.Hour),
		Demo:      true,
	}
}

// Logout always ends the session. The returned error only reports that
// the persisted copy could not be removed.
func (s *SessionService) Logout(ctx context.Context) error {
	s.persist.Lock()
	s.mu.Lock()
	was := s.session
	s.state = StateAnonymous
	s.session = nil
	s.gen++
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	err := s.store.Clear(ctx)
	s.persist.Unlock()
	if err != nil {
		s.log.Error().Err(err).Msg("could not clear persisted session")
	}

	for _, fn := range hooks {
		fn()
	}

	if was != nil {
		s.log.Info().Str("user_id", was.UserID).Msg("logged out")
	}
	if err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}

// Restore reloads a persisted session at startup. Expired sessions are
// discarded. It reports whether a session was restored.
func (s *SessionService) Restore(ctx context.Context) (bool, error) {
	if s.State() != StateAnonymous {
		return false, nil
	}

	session, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load persisted session: %w", err)
	}
	if session == nil {
		return false, nil
	}

	if s.expired(*session) {
		s.log.Info().Str("user_id", session.UserID).Msg("persisted session expired")
		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn().Err(err).Msg("could not clear expired session")
		}
		return false, nil
	}

	s.mu.Lock()
	if s.state != StateAnonymous {
		s.mu.Unlock()
		return false, nil
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	hooks, ok := s.activate(gen, *session)
	if !ok {
		return false, nil
	}
	runLoginHooks(hooks, *session)
	s.log.Info().Str("user_id", session.UserID).Str("scope", session.ScopeName()).Msg("session restored")
	return true, nil
}

func (s *SessionService) expired(session domain.Session) bool {
	now := s.now()
	if !session.ExpiresAt.IsZero() && !now.Before(session.ExpiresAt) {
		return true
	}
	if s.tokens == nil || session.Token == "" {
		return false
	}
	exp, err := s.tokens.Expiry(session.Token)
	if err != nil {
		s.log.Warn().Err(err).Msg("persisted session token unreadable")
		return true
	}
	return !exp.IsZero() && !now.Before(exp)
}

func (s *SessionService) current(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen == gen
}

// activate moves to Authenticated if no Logout or other attempt has
// happened since gen was taken, and returns the login hooks to run.
func (s *SessionService) activate(gen uint64, session domain.Session) ([]func(domain.Session), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil, false
	}
	s.state = StateAuthenticated
	s.session = &session
	return append([]func(domain.Session){}, s.onLogin...), true
}

func runLoginHooks(hooks []func(domain.Session), session domain.Session) {
	for _, fn := range hooks {
		fn(session)
	}
}

func scopeOf(creds domain.Credentials) string {
	switch creds.(type) {
	case domain.StaffCredentials:
		return "staff"
	case domain.GuestCredentials:
		return "guest"
	}
	return "unknown"
}
