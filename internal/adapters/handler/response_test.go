package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NewValidationError("bad"), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.NewForbiddenError("no"), http.StatusForbidden},
		{domain.NewNotFoundError(domain.KindRooms, "r1"), http.StatusNotFound},
		{domain.NewConflictError("taken"), http.StatusConflict},
		{domain.NewNetworkError(errors.New("refused")), http.StatusServiceUnavailable},
		{domain.NewServerError(500, "boom"), http.StatusBadGateway},
		{fmt.Errorf("refresh rooms: %w", domain.ErrForbidden), http.StatusForbidden},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","password":"x","admin":true}`))
	var creds domain.StaffCredentials

	err := decode(req, &creds)

	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	var creds domain.StaffCredentials

	if err := decode(req, &creds); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
