package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

// AuthMiddleware gates routes on the locally held session.
type AuthMiddleware struct {
	sessions ports.SessionService
}

func NewAuthMiddleware(sessions ports.SessionService) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

type contextKey string

const SessionKey contextKey = "session"

// RequireScope admits requests while a session is active and its scope is
// one of scopes ("guest", "reception", "admin"). No scopes admits any
// session.
func (m *AuthMiddleware) RequireScope(scopes []string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := m.sessions.Current()
		if !ok {
			log.Debug().Str("path", r.URL.Path).Msg("No active session")
			http.Error(w, "no active session", http.StatusUnauthorized)
			return
		}

		if len(scopes) > 0 && !contains(scopes, session.ScopeName()) {
			log.Warn().
				Strs("required", scopes).
				Str("scope", session.ScopeName()).
				Str("path", r.URL.Path).
				Msg("Scope mismatch")
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, session)
		next(w, r.WithContext(ctx))
	}
}

// SessionFrom returns the session stored by RequireScope.
func SessionFrom(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(SessionKey).(domain.Session)
	return s, ok
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
