package domain

import "time"

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
	NotificationUrgent  NotificationType = "urgent"
)

// Notification with neither ReservationID nor RoomNumber is a broadcast.
// Read is local to the recipient holding the session.
type Notification struct {
	ID            string           `json:"id"`
	ReservationID string           `json:"reservationId,omitempty"`
	RoomNumber    string           `json:"roomNumber,omitempty"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	Type          NotificationType `json:"type"`
	Read          bool             `json:"read"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func (n Notification) EntityID() string { return n.ID }

func (n Notification) Broadcast() bool {
	return n.ReservationID == "" && n.RoomNumber == ""
}

// VisibleTo reports whether n is addressed to the guest: broadcasts, the
// guest's reservation, or the guest's room when no reservation is set.
func (n Notification) VisibleTo(sc GuestScope) bool {
	if n.Broadcast() {
		return true
	}
	if n.ReservationID != "" {
		return n.ReservationID == sc.ReservationID
	}
	return n.RoomNumber == sc.RoomNumber
}

type NewNotification struct {
	ReservationID string           `json:"reservationId,omitempty"`
	RoomNumber    string           `json:"roomNumber,omitempty"`
	Title         string           `json:"title" validate:"required,max=200"`
	Message       string           `json:"message" validate:"required,max=2000"`
	Type          NotificationType `json:"type" validate:"required,oneof=info warning success urgent"`
}
