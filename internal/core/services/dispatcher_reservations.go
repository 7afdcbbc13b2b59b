package services

import (
	"context"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

func (d *Dispatcher) CreateReservation(ctx context.Context, in domain.NewReservation) (*domain.Reservation, error) {
	a, err := d.beginStaff("create_reservation", domain.KindReservations)
	if err != nil {
		return nil, err
	}

	res, err := d.createReservation(ctx, in)
	id := ""
	if res != nil {
		id = res.ID
	}
	d.finish(ctx, a, id, err)
	return res, err
}

func (d *Dispatcher) createReservation(ctx context.Context, in domain.NewReservation) (*domain.Reservation, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return nil, domain.NewValidationError("check-in and check-out dates are required")
	}
	if !in.CheckOut.After(in.CheckIn) {
		return nil, domain.NewValidationError("check-out must be after check-in")
	}
	if _, ok := d.cache.Rooms.Get(in.RoomID); !ok {
		return nil, domain.NewValidationError("room %q is not known", in.RoomID)
	}

	res, err := d.api.CreateReservation(ctx, in)
	if err != nil {
		return nil, err
	}
	d.cache.Reservations.Upsert(*res)
	return res, nil
}

// TransitionReservation moves a reservation along its lifecycle and applies
// the room status the new state implies.
func (d *Dispatcher) TransitionReservation(ctx context.Context, id string, to domain.ReservationStatus) (*domain.Reservation, error) {
	a, err := d.beginStaff("transition_reservation", domain.KindReservations)
	if err != nil {
		return nil, err
	}

	res, err := d.transitionReservation(ctx, id, to)
	d.finish(ctx, a, id, err)
	return res, err
}

func (d *Dispatcher) transitionReservation(ctx context.Context, id string, to domain.ReservationStatus) (*domain.Reservation, error) {
	if !to.Valid() {
		return nil, domain.NewValidationError("unknown reservation status %q", to)
	}
	current, ok := d.cache.Reservations.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError(domain.KindReservations, id)
	}

	// Check-in conflicts are only detectable per room, so transitions on
	// the same room run one at a time.
	unlock := d.rooms.Lock(current.RoomID)
	defer unlock()

	current, ok = d.cache.Reservations.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError(domain.KindReservations, id)
	}
	if !current.Status.CanTransition(to) {
		return nil, domain.NewValidationError("reservation cannot move from %s to %s", current.Status, to)
	}
	if to == domain.ReservationCheckedIn {
		occupying := d.cache.Reservations.Find(func(r domain.Reservation) bool {
			return r.RoomID == current.RoomID && r.ID != id && r.Status == domain.ReservationCheckedIn
		})
		if len(occupying) > 0 {
			return nil, domain.NewConflictError("room %q already has checked-in reservation %q", current.RoomID, occupying[0].ID)
		}
	}

	res, err := d.api.UpdateReservationStatus(ctx, id, to)
	if err != nil {
		return nil, err
	}
	d.cache.Reservations.Upsert(*res)

	if status, affected := domain.RoomStatusAfter(current.Status, res.Status); affected {
		_, err := d.cache.Rooms.Patch(res.RoomID, func(r *domain.Room) error {
			r.Status = status
			return nil
		})
		if err != nil {
			d.log.Warn().Err(err).Str("room_id", res.RoomID).Msg("room not cached, status not applied")
		}
	}
	return res, nil
}

func (d *Dispatcher) UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) (*domain.Room, error) {
	a, err := d.beginStaff("update_room_status", domain.KindRooms)
	if err != nil {
		return nil, err
	}

	room, err := d.updateRoomStatus(ctx, roomID, status)
	d.finish(ctx, a, roomID, err)
	return room, err
}

func (d *Dispatcher) updateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) (*domain.Room, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("unknown room status %q", status)
	}
	if _, ok := d.cache.Rooms.Get(roomID); !ok {
		return nil, domain.NewNotFoundError(domain.KindRooms, roomID)
	}

	room, err := d.api.UpdateRoomStatus(ctx, roomID, status)
	if err != nil {
		return nil, err
	}
	d.cache.Rooms.Upsert(*room)
	return room, nil
}
