package projector

import (
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/cache"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

type GuestView struct {
	Reservation         *domain.Reservation     `json:"reservation,omitempty"`
	Room                *domain.Room            `json:"room,omitempty"`
	Messages            []domain.Message        `json:"messages"`
	Notifications       []domain.Notification   `json:"notifications"`
	ServiceRequests     []domain.ServiceRequest `json:"serviceRequests"`
	Catalog             []domain.CatalogItem    `json:"catalog"`
	UnreadMessages      int                     `json:"unreadMessages"`
	UnreadNotifications int                     `json:"unreadNotifications"`
}

func (*GuestView) ScopeName() string { return "guest" }

// Guest never includes entities of another reservation or room.
func Guest(sc domain.GuestScope, snap cache.Snapshot) *GuestView {
	v := &GuestView{
		Messages:        []domain.Message{},
		Notifications:   []domain.Notification{},
		ServiceRequests: []domain.ServiceRequest{},
		Catalog:         []domain.CatalogItem{},
	}

	for _, r := range snap.Reservations {
		if r.ID == sc.ReservationID {
			r := r
			v.Reservation = &r
			break
		}
	}

	roomID := sc.RoomID
	if roomID == "" && v.Reservation != nil {
		roomID = v.Reservation.RoomID
	}
	for _, r := range snap.Rooms {
		if (roomID != "" && r.ID == roomID) || (roomID == "" && r.Number == sc.RoomNumber) {
			r := r
			v.Room = &r
			break
		}
	}

	for _, m := range snap.Messages {
		if m.ReservationID != sc.ReservationID {
			continue
		}
		v.Messages = append(v.Messages, m)
		if m.Sender == domain.SenderReception && !m.Read {
			v.UnreadMessages++
		}
	}

	for _, n := range snap.Notifications {
		if !n.VisibleTo(sc) {
			continue
		}
		v.Notifications = append(v.Notifications, n)
		if !n.Read {
			v.UnreadNotifications++
		}
	}

	for _, r := range snap.ServiceRequests {
		if r.ReservationID == sc.ReservationID {
			v.ServiceRequests = append(v.ServiceRequests, r)
		}
	}

	for _, c := range snap.Catalog {
		if c.Available {
			v.Catalog = append(v.Catalog, c)
		}
	}
	return v
}
