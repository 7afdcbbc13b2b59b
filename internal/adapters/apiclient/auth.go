package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

type authResponse struct {
	Token string   `json:"token"`
	User  authUser `json:"user"`
}

type authUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	ReservationID string `json:"reservationId"`
	RoomID        string `json:"roomId"`
	RoomNumber    string `json:"roomNumber"`
}

func (c *HTTPClient) AuthenticateStaff(ctx context.Context, creds domain.StaffCredentials) (*domain.Session, error) {
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, credentialsError(err)
	}

	role := domain.Role(out.User.Role)
	if role != domain.RoleReception && role != domain.RoleAdmin {
		return nil, &domain.Error{Kind: domain.KindServer, Status: http.StatusOK, Message: "unknown staff role " + out.User.Role}
	}
	return &domain.Session{
		UserID: out.User.ID,
		Name:   out.User.Name,
		Email:  out.User.Email,
		Token:  out.Token,
		Scope:  domain.StaffScope{Role: role},
	}, nil
}

func (c *HTTPClient) AuthenticateGuest(ctx context.Context, creds domain.GuestCredentials) (*domain.Session, error) {
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/guest", creds, &out); err != nil {
		return nil, credentialsError(err)
	}

	if out.User.ReservationID == "" {
		return nil, &domain.Error{Kind: domain.KindServer, Status: http.StatusOK, Message: "guest session without reservation"}
	}
	roomNumber := out.User.RoomNumber
	if roomNumber == "" {
		roomNumber = creds.RoomNumber
	}
	return &domain.Session{
		UserID: out.User.ID,
		Name:   out.User.Name,
		Email:  out.User.Email,
		Token:  out.Token,
		Scope: domain.GuestScope{
			ReservationID: out.User.ReservationID,
			RoomID:        out.User.RoomID,
			RoomNumber:    roomNumber,
			GuestName:     out.User.Name,
		},
	}, nil
}

// credentialsError maps 401/403 from the auth endpoints to InvalidCredentials.
func credentialsError(err error) error {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind == domain.KindServer &&
		(de.Status == http.StatusUnauthorized || de.Status == http.StatusForbidden) {
		return domain.ErrInvalidCredentials
	}
	return err
}
