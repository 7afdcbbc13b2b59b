package projector

import (
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/cache"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// Conversation summarises the chat of one reservation for reception.
type Conversation struct {
	ReservationID string          `json:"reservationId"`
	RoomNumber    string          `json:"roomNumber"`
	Unread        int             `json:"unread"`
	LastMessage   *domain.Message `json:"lastMessage,omitempty"`
}

type Badges struct {
	UnreadMessages  int `json:"unreadMessages"`
	PendingRequests int `json:"pendingRequests"`
	OpenRequests    int `json:"openRequests"`
}

type ReceptionView struct {
	Rooms           []domain.Room           `json:"rooms"`
	Reservations    []domain.Reservation    `json:"reservations"`
	Guests          []domain.Guest          `json:"guests"`
	Messages        []domain.Message        `json:"messages"`
	ServiceRequests []domain.ServiceRequest `json:"serviceRequests"`
	Notifications   []domain.Notification   `json:"notifications"`
	Conversations   []Conversation          `json:"conversations"`
	Badges          Badges                  `json:"badges"`
}

func (*ReceptionView) ScopeName() string { return "reception" }

type Metrics struct {
	TotalRooms    int                       `json:"totalRooms"`
	OccupiedRooms int                       `json:"occupiedRooms"`
	OccupancyRate float64                   `json:"occupancyRate"`
	Revenue       int64                     `json:"revenue"`
	RoomsByStatus map[domain.RoomStatus]int `json:"roomsByStatus"`
	ActiveStays   int                       `json:"activeStays"`
}

type AdminView struct {
	ReceptionView
	Metrics Metrics `json:"metrics"`
}

func (*AdminView) ScopeName() string { return "admin" }

func Reception(snap cache.Snapshot) *ReceptionView {
	v := &ReceptionView{
		Rooms:           nonNil(snap.Rooms),
		Reservations:    nonNil(snap.Reservations),
		Guests:          nonNil(snap.Guests),
		Messages:        nonNil(snap.Messages),
		ServiceRequests: nonNil(snap.ServiceRequests),
		Notifications:   nonNil(snap.Notifications),
		Conversations:   []Conversation{},
	}

	index := make(map[string]int)
	for _, m := range snap.Messages {
		i, ok := index[m.ReservationID]
		if !ok {
			i = len(v.Conversations)
			index[m.ReservationID] = i
			v.Conversations = append(v.Conversations, Conversation{ReservationID: m.ReservationID})
		}
		c := &v.Conversations[i]
		if m.RoomNumber != "" {
			c.RoomNumber = m.RoomNumber
		}
		if c.LastMessage == nil || !m.Timestamp.Before(c.LastMessage.Timestamp) {
			m := m
			c.LastMessage = &m
		}
		if m.Sender == domain.SenderGuest && !m.Read {
			c.Unread++
			v.Badges.UnreadMessages++
		}
	}

	for _, r := range snap.ServiceRequests {
		if r.Status == domain.RequestPending {
			v.Badges.PendingRequests++
		}
		if r.Status.Open() {
			v.Badges.OpenRequests++
		}
	}
	return v
}

func Admin(snap cache.Snapshot) *AdminView {
	return &AdminView{
		ReceptionView: *Reception(snap),
		Metrics:       ComputeMetrics(snap),
	}
}

// ComputeMetrics derives occupancy and revenue. Occupancy is 0 with no rooms.
func ComputeMetrics(snap cache.Snapshot) Metrics {
	m := Metrics{
		TotalRooms:    len(snap.Rooms),
		RoomsByStatus: make(map[domain.RoomStatus]int),
	}
	for _, r := range snap.Rooms {
		m.RoomsByStatus[r.Status]++
		if r.Status == domain.RoomOccupied {
			m.OccupiedRooms++
		}
	}
	if m.TotalRooms > 0 {
		m.OccupancyRate = float64(m.OccupiedRooms) / float64(m.TotalRooms)
	}
	for _, r := range snap.Reservations {
		if r.Status.Billable() {
			m.Revenue += r.TotalAmount
		}
		if r.Status == domain.ReservationCheckedIn {
			m.ActiveStays++
		}
	}
	return m
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
