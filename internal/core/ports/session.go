package ports

import (
	"context"
	"time"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// SessionPersister stores the single active session under a fixed key.
// Load returns nil, nil when nothing is stored.
type SessionPersister interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (*domain.Session, error)
	Clear(ctx context.Context) error
}

type TokenInspector interface {
	// Expiry returns the token expiry, or the zero time when the token
	// carries none.
	Expiry(token string) (time.Time, error)
}
