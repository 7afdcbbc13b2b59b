package apiclient

import (
	"context"
	"net/http"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

type statusBody[S ~string] struct {
	Status S `json:"status"`
}

func (c *HTTPClient) CreateReservation(ctx context.Context, in domain.NewReservation) (*domain.Reservation, error) {
	var out domain.Reservation
	if err := c.doJSON(ctx, http.MethodPost, "/reservations", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	var out domain.Reservation
	if err := c.doJSON(ctx, http.MethodPatch, itemPath("reservations", id, "status"), statusBody[domain.ReservationStatus]{status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateRoomStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error) {
	var out domain.Room
	if err := c.doJSON(ctx, http.MethodPatch, itemPath("rooms", id, "status"), statusBody[domain.RoomStatus]{status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, in domain.NewMessage) (*domain.Message, error) {
	var out domain.Message
	if err := c.doJSON(ctx, http.MethodPost, "/messages", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) MarkMessageRead(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, itemPath("messages", id, "read"), nil, nil)
}

func (c *HTTPClient) MarkConversationRead(ctx context.Context, reservationID string, reader domain.Sender) error {
	body := struct {
		Reader domain.Sender `json:"reader"`
	}{reader}
	return c.doJSON(ctx, http.MethodPost, itemPath("reservations", reservationID, "messages", "read"), body, nil)
}

func (c *HTTPClient) CreateServiceRequest(ctx context.Context, in domain.NewServiceRequest) (*domain.ServiceRequest, error) {
	var out domain.ServiceRequest
	if err := c.doJSON(ctx, http.MethodPost, "/service-requests", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateServiceRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	var out domain.ServiceRequest
	if err := c.doJSON(ctx, http.MethodPatch, itemPath("service-requests", id, "status"), statusBody[domain.RequestStatus]{status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateNotification(ctx context.Context, in domain.NewNotification) (*domain.Notification, error) {
	var out domain.Notification
	if err := c.doJSON(ctx, http.MethodPost, "/notifications", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, itemPath("notifications", id, "read"), nil, nil)
}
