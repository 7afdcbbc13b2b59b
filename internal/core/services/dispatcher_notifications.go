package services

import (
	"context"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// CreateNotification prepends the notification optimistically. Without a
// reservation or room it is broadcast to every guest.
func (d *Dispatcher) CreateNotification(ctx context.Context, in domain.NewNotification) (*domain.Notification, error) {
	a, err := d.beginStaff("create_notification", domain.KindNotifications)
	if err != nil {
		return nil, err
	}

	n, err := d.createNotification(ctx, in)
	id := ""
	if n != nil {
		id = n.ID
	}
	d.finish(ctx, a, id, err)
	return n, err
}

func (d *Dispatcher) createNotification(ctx context.Context, in domain.NewNotification) (*domain.Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.ReservationID != "" {
		res, ok := d.cache.Reservations.Get(in.ReservationID)
		if !ok {
			return nil, domain.NewValidationError("reservation %q is not known", in.ReservationID)
		}
		if in.RoomNumber == "" {
			if room, ok := d.cache.Rooms.Get(res.RoomID); ok {
				in.RoomNumber = room.Number
			}
		}
	}

	pending := d.cache.Notifications.Stage(domain.Notification{
		ID:            d.newID(),
		ReservationID: in.ReservationID,
		RoomNumber:    in.RoomNumber,
		Title:         in.Title,
		Message:       in.Message,
		Type:          in.Type,
		CreatedAt:     d.now(),
	})

	n, err := d.api.CreateNotification(ctx, in)
	if err != nil {
		pending.Revert()
		return nil, err
	}
	pending.Commit(*n)
	return n, nil
}

// MarkNotificationRead is idempotent and only affects this recipient.
func (d *Dispatcher) MarkNotificationRead(ctx context.Context, id string) (*domain.Notification, error) {
	a, err := d.begin("mark_notification_read", domain.KindNotifications)
	if err != nil {
		return nil, err
	}

	n, err := d.markNotificationRead(ctx, a.session, id)
	d.finish(ctx, a, id, err)
	return n, err
}

func (d *Dispatcher) markNotificationRead(ctx context.Context, session domain.Session, id string) (*domain.Notification, error) {
	current, ok := d.cache.Notifications.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError(domain.KindNotifications, id)
	}
	if sc, ok := session.Scope.(domain.GuestScope); ok && !current.VisibleTo(sc) {
		return nil, domain.NewForbiddenError("notification %q is not addressed to you", id)
	}
	if current.Read {
		return &current, nil
	}

	pending, err := d.cache.Notifications.StagePatch(id, func(n *domain.Notification) error {
		n.Read = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := d.api.MarkNotificationRead(ctx, id); err != nil {
		pending.Revert()
		return nil, err
	}

	current.Read = true
	pending.Commit(current)
	return &current, nil
}
