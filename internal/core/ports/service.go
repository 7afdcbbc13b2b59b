package ports

import (
	"context"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

type SessionService interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	Logout(ctx context.Context) error
	Current() (domain.Session, bool)
}

type ContactService interface {
	Get(ctx context.Context) domain.ContactInfo
}

// Refresher reloads cached collections from the backend.
type Refresher interface {
	Refresh(ctx context.Context, kind domain.Kind) error
	RefreshAll(ctx context.Context) error
}

// ActionDispatcher submits user intents to the backend and reconciles the
// cache with the outcome.
type ActionDispatcher interface {
	CreateReservation(ctx context.Context, in domain.NewReservation) (*domain.Reservation, error)
	TransitionReservation(ctx context.Context, id string, to domain.ReservationStatus) (*domain.Reservation, error)
	UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) (*domain.Room, error)

	SendMessage(ctx context.Context, in domain.NewMessage) (*domain.Message, error)
	MarkMessageRead(ctx context.Context, id string) (*domain.Message, error)
	MarkConversationRead(ctx context.Context, reservationID string) (int, error)

	CreateServiceRequest(ctx context.Context, in domain.NewServiceRequest) (*domain.ServiceRequest, error)
	TransitionServiceRequest(ctx context.Context, id string, to domain.RequestStatus) (*domain.ServiceRequest, error)
	PlaceRoomServiceOrder(ctx context.Context, reservationID string, cart *domain.Cart, notes string) (*domain.ServiceRequest, error)

	CreateNotification(ctx context.Context, in domain.NewNotification) (*domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (*domain.Notification, error)
}
