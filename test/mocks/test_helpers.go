package mocks

import (
	"time"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// StaffSession creates a staff session with the given role.
func StaffSession(role domain.Role) *domain.Session {
	return &domain.Session{
		UserID: "staff-" + string(role),
		Name:   "Test " + string(role),
		Email:  string(role) + "@hotel.test",
		Token:  "staff-token",
		Scope:  domain.StaffScope{Role: role},
	}
}

// GuestSession creates a guest session bound to one reservation and room.
func GuestSession(reservationID, roomID, roomNumber string) *domain.Session {
	return &domain.Session{
		UserID: "guest-" + reservationID,
		Name:   "Test Guest",
		Token:  "guest-token",
		Scope: domain.GuestScope{
			ReservationID: reservationID,
			RoomID:        roomID,
			RoomNumber:    roomNumber,
			GuestName:     "Test Guest",
		},
	}
}

func CreateTestRoom(id, number string, status domain.RoomStatus) domain.Room {
	return domain.Room{
		ID:       id,
		Number:   number,
		Floor:    1,
		Type:     domain.RoomStandard,
		Status:   status,
		Price:    15000,
		Capacity: 2,
	}
}

func CreateTestReservation(id, guestID, roomID string, status domain.ReservationStatus, total int64) domain.Reservation {
	checkIn := time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC)
	return domain.Reservation{
		ID:          id,
		GuestID:     guestID,
		RoomID:      roomID,
		CheckIn:     checkIn,
		CheckOut:    checkIn.Add(72 * time.Hour),
		Status:      status,
		TotalAmount: total,
	}
}

func CreateTestGuest(id, first, last string) domain.Guest {
	return domain.Guest{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Document:  domain.Document{Type: "passport", Number: "P-" + id},
	}
}

func CreateTestMessage(id, reservationID string, sender domain.Sender, at time.Time) domain.Message {
	return domain.Message{
		ID:            id,
		ReservationID: reservationID,
		Content:       "hello from " + string(sender),
		Sender:        sender,
		Timestamp:     at,
	}
}

func CreateTestCatalogItem(id, name string, price int64, available bool) domain.CatalogItem {
	return domain.CatalogItem{
		ID:        id,
		Type:      "room-service",
		Category:  "food",
		Name:      name,
		Price:     price,
		Available: available,
	}
}
