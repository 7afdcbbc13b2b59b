package domain

import "time"

type ReservationStatus string

const (
	ReservationConfirmed  ReservationStatus = "confirmed"
	ReservationCheckedIn  ReservationStatus = "checked-in"
	ReservationCheckedOut ReservationStatus = "checked-out"
	ReservationCancelled  ReservationStatus = "cancelled"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationConfirmed: {ReservationCheckedIn, ReservationCancelled},
	ReservationCheckedIn: {ReservationCheckedOut, ReservationCancelled},
}

// CanTransition reports whether a reservation may move from s to next.
// checked-out and cancelled are terminal.
func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationConfirmed, ReservationCheckedIn, ReservationCheckedOut, ReservationCancelled:
		return true
	}
	return false
}

// Billable reports whether the reservation counts towards revenue.
func (s ReservationStatus) Billable() bool {
	return s == ReservationCheckedIn || s == ReservationCheckedOut
}

// RoomStatusAfter returns the room status implied by a reservation moving
// from one status to another, and false when the room is unaffected.
func RoomStatusAfter(from, to ReservationStatus) (RoomStatus, bool) {
	switch to {
	case ReservationCheckedIn:
		return RoomOccupied, true
	case ReservationCheckedOut:
		return RoomCleaning, true
	case ReservationCancelled:
		if from == ReservationCheckedIn {
			return RoomCleaning, true
		}
	}
	return "", false
}

type Reservation struct {
	ID          string            `json:"id"`
	GuestID     string            `json:"guestId"`
	RoomID      string            `json:"roomId"`
	CheckIn     time.Time         `json:"checkIn"`
	CheckOut    time.Time         `json:"checkOut"`
	Status      ReservationStatus `json:"status"`
	TotalAmount int64             `json:"totalAmount"`
	Notes       string            `json:"notes,omitempty"`
}

func (r Reservation) EntityID() string { return r.ID }

// NewReservation is the client-supplied part of a reservation.
type NewReservation struct {
	GuestID     string    `json:"guestId" validate:"required"`
	RoomID      string    `json:"roomId" validate:"required"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	TotalAmount int64     `json:"totalAmount" validate:"gte=0"`
	Notes       string    `json:"notes,omitempty" validate:"max=1000"`
}
