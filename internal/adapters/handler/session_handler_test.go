package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/handler"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/test/mocks"
)

func TestSessionHandler_StaffLogin(t *testing.T) {
	sessions := mocks.NewMockSessionService(nil)
	sessions.LoginSession = mocks.StaffSession(domain.RoleAdmin)
	h := handler.NewSessionHandler(sessions)

	req := httptest.NewRequest(http.MethodPost, "/session/staff", strings.NewReader(`{"email":"admin@hotel.test","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.StaffLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var response handler.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Scope != "admin" {
		t.Errorf("expected scope admin, got %q", response.Scope)
	}
	if len(sessions.LoginCalls) != 1 {
		t.Fatalf("expected one login call, got %d", len(sessions.LoginCalls))
	}
	if _, ok := sessions.LoginCalls[0].(domain.StaffCredentials); !ok {
		t.Errorf("expected staff credentials, got %T", sessions.LoginCalls[0])
	}
}

func TestSessionHandler_GuestLogin(t *testing.T) {
	sessions := mocks.NewMockSessionService(nil)
	sessions.LoginSession = mocks.GuestSession("res1", "r101", "101")
	h := handler.NewSessionHandler(sessions)

	req := httptest.NewRequest(http.MethodPost, "/session/guest", strings.NewReader(`{"roomNumber":"101","document":"P-1"}`))
	rec := httptest.NewRecorder()
	h.GuestLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	creds, ok := sessions.LoginCalls[0].(domain.GuestCredentials)
	if !ok || creds.RoomNumber != "101" || creds.Document != "P-1" {
		t.Errorf("unexpected credentials %+v", sessions.LoginCalls[0])
	}
}

func TestSessionHandler_LoginErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		loginErr error
		want     int
	}{
		{"unknown field", `{"email":"a@b.c","password":"x","role":"admin"}`, nil, http.StatusBadRequest},
		{"rejected", `{"email":"a@b.c","password":"x"}`, domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"already signed in", `{"email":"a@b.c","password":"x"}`, domain.NewConflictError("log out first"), http.StatusConflict},
		{"backend down", `{"email":"a@b.c","password":"x"}`, domain.NewNetworkError(errors.New("refused")), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := mocks.NewMockSessionService(nil)
			sessions.LoginError = tt.loginErr
			h := handler.NewSessionHandler(sessions)

			rec := httptest.NewRecorder()
			h.StaffLogin(rec, httptest.NewRequest(http.MethodPost, "/session/staff", strings.NewReader(tt.body)))

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
			var response handler.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if response.Error == "" {
				t.Error("expected an error kind")
			}
		})
	}
}

func TestSessionHandler_CurrentAndLogout(t *testing.T) {
	sessions := mocks.NewMockSessionService(mocks.StaffSession(domain.RoleReception))
	h := handler.NewSessionHandler(sessions)

	rec := httptest.NewRecorder()
	h.Current(rec, httptest.NewRequest(http.MethodGet, "/session", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodDelete, "/session", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if sessions.LogoutCalls != 1 {
		t.Errorf("expected one logout call, got %d", sessions.LogoutCalls)
	}

	rec = httptest.NewRecorder()
	h.Current(rec, httptest.NewRequest(http.MethodGet, "/session", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", rec.Code)
	}
}
