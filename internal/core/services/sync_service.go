package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/cache"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/logging"
)

const maxConcurrentRefreshes = 4

// SyncService replaces cached collections with backend snapshots. A failed
// refresh keeps the last known-good collection and is not retried.
type SyncService struct {
	api      ports.HotelAPI
	cache    *cache.Cache
	sessions ports.SessionService
	recorder ports.ActionRecorder
	log      zerolog.Logger
}

var _ ports.Refresher = (*SyncService)(nil)

func NewSyncService(api ports.HotelAPI, c *cache.Cache, sessions ports.SessionService, recorder ports.ActionRecorder) *SyncService {
	return &SyncService{
		api:      api,
		cache:    c,
		sessions: sessions,
		recorder: recorder,
		log:      logging.Component("sync"),
	}
}

func (s *SyncService) Refresh(ctx context.Context, kind domain.Kind) error {
	session, ok := s.sessions.Current()
	if !ok {
		return domain.ErrUnauthorized
	}
	if !kindVisible(session, kind) {
		return domain.NewForbiddenError("%s are not available to %s sessions", kind, session.ScopeName())
	}

	err := s.refresh(ctx, kind)
	s.recordRefresh(kind, err)
	if err != nil {
		s.log.Warn().Err(err).Str("kind", string(kind)).Msg("refresh failed, keeping cached snapshot")
		return fmt.Errorf("refresh %s: %w", kind, err)
	}
	return nil
}

// RefreshAll refreshes every kind visible to the session concurrently. Each
// kind succeeds or fails on its own; the first error is returned.
func (s *SyncService) RefreshAll(ctx context.Context) error {
	session, ok := s.sessions.Current()
	if !ok {
		return domain.ErrUnauthorized
	}

	var g errgroup.Group
	g.SetLimit(maxConcurrentRefreshes)
	for _, kind := range domain.AllKinds {
		if !kindVisible(session, kind) {
			continue
		}
		g.Go(func() error {
			return s.Refresh(ctx, kind)
		})
	}
	return g.Wait()
}

func (s *SyncService) refresh(ctx context.Context, kind domain.Kind) error {
	switch kind {
	case domain.KindGuests:
		return load(ctx, s.api.FetchGuests, s.cache.Guests)
	case domain.KindRooms:
		return load(ctx, s.api.FetchRooms, s.cache.Rooms)
	case domain.KindReservations:
		return load(ctx, s.api.FetchReservations, s.cache.Reservations)
	case domain.KindMessages:
		return load(ctx, s.api.FetchMessages, s.cache.Messages)
	case domain.KindServiceRequests:
		return load(ctx, s.api.FetchServiceRequests, s.cache.ServiceRequests)
	case domain.KindNotifications:
		return s.refreshNotifications(ctx)
	case domain.KindCatalog:
		return load(ctx, s.api.FetchCatalog, s.cache.Catalog)
	}
	return domain.NewValidationError("unknown entity kind %q", kind)
}

// refreshNotifications keeps the recipient-local read flag of notifications
// already read here, since the backend may only track it per recipient.
func (s *SyncService) refreshNotifications(ctx context.Context) error {
	items, err := s.api.FetchNotifications(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if cached, ok := s.cache.Notifications.Get(items[i].ID); ok && cached.Read {
			items[i].Read = true
		}
	}
	s.cache.Notifications.Replace(items)
	return nil
}

func load[T domain.Entity](ctx context.Context, fetch func(context.Context) ([]T, error), into *cache.Collection[T]) error {
	items, err := fetch(ctx)
	if err != nil {
		return err
	}
	into.Replace(items)
	return nil
}

func (s *SyncService) recordRefresh(kind domain.Kind, err error) {
	if s.recorder == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(domain.KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	s.recorder.RecordRefresh(string(kind), outcome)
}

// kindVisible hides the guest registry from guest sessions.
func kindVisible(session domain.Session, kind domain.Kind) bool {
	switch session.Scope.(type) {
	case domain.GuestScope:
		return kind != domain.KindGuests
	case domain.StaffScope:
		return true
	}
	return false
}
