package apiclient

import (
	"context"
	"net/http"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

func fetch[T any](ctx context.Context, c *HTTPClient, path string) ([]T, error) {
	var out []T
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *HTTPClient) FetchGuests(ctx context.Context) ([]domain.Guest, error) {
	return fetch[domain.Guest](ctx, c, "/guests")
}

func (c *HTTPClient) FetchRooms(ctx context.Context) ([]domain.Room, error) {
	return fetch[domain.Room](ctx, c, "/rooms")
}

func (c *HTTPClient) FetchReservations(ctx context.Context) ([]domain.Reservation, error) {
	return fetch[domain.Reservation](ctx, c, "/reservations")
}

func (c *HTTPClient) FetchMessages(ctx context.Context) ([]domain.Message, error) {
	return fetch[domain.Message](ctx, c, "/messages")
}

func (c *HTTPClient) FetchServiceRequests(ctx context.Context) ([]domain.ServiceRequest, error) {
	return fetch[domain.ServiceRequest](ctx, c, "/service-requests")
}

func (c *HTTPClient) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	return fetch[domain.Notification](ctx, c, "/notifications")
}

func (c *HTTPClient) FetchCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	return fetch[domain.CatalogItem](ctx, c, "/catalog")
}

func (c *HTTPClient) FetchContactInfo(ctx context.Context) (*domain.PartialContactInfo, error) {
	var out domain.PartialContactInfo
	if err := c.doJSON(ctx, http.MethodGet, "/hotel/contact", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
