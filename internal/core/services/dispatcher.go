package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/cache"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/logging"
)

const eventPublishTimeout = 5 * time.Second

// Dispatcher runs validated, backend-confirmed mutations and reconciles the
// cache with the result. A failed action leaves the cache as it was.
// Creation actions are never retried here.
type Dispatcher struct {
	api      ports.HotelAPI
	cache    *cache.Cache
	sessions ports.SessionService
	events   ports.ActionEventPublisher
	recorder ports.ActionRecorder
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string

	rooms keyedMutex
}

var _ ports.ActionDispatcher = (*Dispatcher)(nil)

type DispatcherOption func(*Dispatcher)

func WithEventPublisher(p ports.ActionEventPublisher) DispatcherOption {
	return func(d *Dispatcher) { d.events = p }
}

func WithRecorder(r ports.ActionRecorder) DispatcherOption {
	return func(d *Dispatcher) { d.recorder = r }
}

func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

func NewDispatcher(api ports.HotelAPI, c *cache.Cache, sessions ports.SessionService, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		api:      api,
		cache:    c,
		sessions: sessions,
		log:      logging.Component("dispatcher"),
		now:      time.Now,
		newID:    func() string { return "pending-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// action is the bookkeeping shared by every dispatcher method.
type action struct {
	name    string
	kind    domain.Kind
	session domain.Session
	started time.Time
}

func (d *Dispatcher) begin(name string, kind domain.Kind) (*action, error) {
	a := &action{name: name, kind: kind, started: d.now()}
	session, ok := d.sessions.Current()
	if !ok {
		d.record(a, domain.ErrUnauthorized)
		return nil, domain.ErrUnauthorized
	}
	a.session = session
	return a, nil
}

// beginStaff is begin for actions only reception and admin may run.
func (d *Dispatcher) beginStaff(name string, kind domain.Kind) (*action, error) {
	a, err := d.begin(name, kind)
	if err != nil {
		return nil, err
	}
	if !a.session.IsStaff() {
		err := domain.NewForbiddenError("%s requires a staff session", name)
		d.record(a, err)
		return nil, err
	}
	return a, nil
}

// finish records the outcome and, on success, publishes the action event.
func (d *Dispatcher) finish(ctx context.Context, a *action, entityID string, err error) {
	d.record(a, err)
	if err != nil {
		d.log.Warn().Err(err).
			Str("action", a.name).
			Str("entity_id", entityID).
			Str("error_kind", string(domain.KindOf(err))).
			Msg("action failed")
		return
	}

	d.log.Debug().Str("action", a.name).Str("entity_id", entityID).Msg("action confirmed")
	if d.events == nil {
		return
	}

	evt := ports.ActionEvent{
		Action:     a.name,
		EntityKind: string(a.kind),
		EntityID:   entityID,
		Scope:      a.session.ScopeName(),
		UserID:     a.session.UserID,
		OccurredAt: d.now().UTC(),
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
	defer cancel()
	if err := d.events.PublishActionEvent(pubCtx, evt); err != nil {
		d.log.Warn().Err(err).Str("action", a.name).Msg("could not publish action event")
	}
}

func (d *Dispatcher) record(a *action, err error) {
	if d.recorder == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(domain.KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	d.recorder.RecordAction(a.name, outcome, d.now().Sub(a.started))
}

// ownReservation rejects guests acting on another reservation.
func ownReservation(session domain.Session, reservationID string) error {
	switch sc := session.Scope.(type) {
	case domain.GuestScope:
		if reservationID != sc.ReservationID {
			return domain.NewForbiddenError("reservation %q is not yours", reservationID)
		}
		return nil
	case domain.StaffScope:
		return nil
	}
	return domain.ErrUnauthorized
}

// keyedMutex serializes work per key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
