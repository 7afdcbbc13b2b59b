package ports

import (
	"context"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// HotelAPI is the backend collaborator. Every failure is a *domain.Error.
type HotelAPI interface {
	AuthenticateStaff(ctx context.Context, creds domain.StaffCredentials) (*domain.Session, error)
	AuthenticateGuest(ctx context.Context, creds domain.GuestCredentials) (*domain.Session, error)

	FetchGuests(ctx context.Context) ([]domain.Guest, error)
	FetchRooms(ctx context.Context) ([]domain.Room, error)
	FetchReservations(ctx context.Context) ([]domain.Reservation, error)
	FetchMessages(ctx context.Context) ([]domain.Message, error)
	FetchServiceRequests(ctx context.Context) ([]domain.ServiceRequest, error)
	FetchNotifications(ctx context.Context) ([]domain.Notification, error)
	FetchCatalog(ctx context.Context) ([]domain.CatalogItem, error)
	FetchContactInfo(ctx context.Context) (*domain.PartialContactInfo, error)

	CreateReservation(ctx context.Context, in domain.NewReservation) (*domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error)
	UpdateRoomStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error)

	SendMessage(ctx context.Context, in domain.NewMessage) (*domain.Message, error)
	MarkMessageRead(ctx context.Context, id string) error
	MarkConversationRead(ctx context.Context, reservationID string, reader domain.Sender) error

	CreateServiceRequest(ctx context.Context, in domain.NewServiceRequest) (*domain.ServiceRequest, error)
	UpdateServiceRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.ServiceRequest, error)

	CreateNotification(ctx context.Context, in domain.NewNotification) (*domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}
