package domain

import "time"

type Sender string

const (
	SenderGuest     Sender = "guest"
	SenderReception Sender = "reception"
)

type Message struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservationId"`
	RoomNumber    string    `json:"roomNumber"`
	Content       string    `json:"content"`
	Sender        Sender    `json:"sender"`
	Timestamp     time.Time `json:"timestamp"`
	Read          bool      `json:"read"`
}

func (m Message) EntityID() string { return m.ID }

type NewMessage struct {
	ReservationID string `json:"reservationId" validate:"required"`
	RoomNumber    string `json:"roomNumber"`
	Content       string `json:"content" validate:"required,max=2000"`
	Sender        Sender `json:"sender" validate:"required,oneof=guest reception"`
}
