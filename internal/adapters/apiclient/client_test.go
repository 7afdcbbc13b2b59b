package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second)
}

func TestAuthenticateStaff(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@hotel.test", body["email"])

		_, _ = io.WriteString(w, `{"token":"tok","user":{"id":"u1","name":"Ana","email":"ana@hotel.test","role":"admin"}}`)
	})

	s, err := c.AuthenticateStaff(context.Background(), domain.StaffCredentials{Email: "ana@hotel.test", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, domain.StaffScope{Role: domain.RoleAdmin}, s.Scope)
}

func TestAuthenticate_RejectedCredentials(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"error":"invalid credentials"}`)
			})

			_, err := c.AuthenticateStaff(context.Background(), domain.StaffCredentials{Email: "a@b.c", Password: "x"})
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestAuthenticateGuest_FillsRoomNumber(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/guest", r.URL.Path)
		_, _ = io.WriteString(w, `{"token":"tok","user":{"id":"g1","name":"Luis","reservationId":"res1","roomId":"r101"}}`)
	})

	s, err := c.AuthenticateGuest(context.Background(), domain.GuestCredentials{RoomNumber: "101", Document: "CC123"})

	require.NoError(t, err)
	assert.Equal(t, domain.GuestScope{ReservationID: "res1", RoomID: "r101", RoomNumber: "101", GuestName: "Luis"}, s.Scope)
}

func TestAuthenticateStaff_UnknownRoleIsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"token":"tok","user":{"id":"u1","role":"guest"}}`)
	})

	_, err := c.AuthenticateStaff(context.Background(), domain.StaffCredentials{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrServer)
}

func TestFetchRooms_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"id":"r101","number":"101","status":"available","price":15000}]`)
	})
	c.SetToken("tok")

	rooms, err := c.FetchRooms(context.Background())

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, domain.RoomAvailable, rooms[0].Status)
	assert.Equal(t, int64(15000), rooms[0].Price)
}

func TestFetch_NullBodyIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})

	msgs, err := c.FetchMessages(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
		msg    string
	}{
		{"bad request", http.StatusBadRequest, `{"message":"checkOut before checkIn"}`, domain.ErrValidation, "checkOut before checkIn"},
		{"unprocessable", http.StatusUnprocessableEntity, `{"error":"bad"}`, domain.ErrValidation, "bad"},
		{"not found", http.StatusNotFound, ``, domain.NewServerError(http.StatusNotFound, ""), "Not Found"},
		{"conflict", http.StatusConflict, `{"error":"room occupied"}`, domain.NewServerError(http.StatusConflict, ""), "room occupied"},
		{"internal", http.StatusInternalServerError, `oops`, domain.NewServerError(http.StatusInternalServerError, ""), "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.FetchReservations(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestMalformedBodyIsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	})

	_, err := c.FetchCatalog(context.Background())
	assert.ErrorIs(t, err, domain.ErrServer)
}

func TestUnreachableBackendIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	_, err := c.FetchRooms(context.Background())

	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestBreakerOpensOnServerFailuresOnly(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusBadRequest)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	})

	for i := 0; i < 5; i++ {
		_, _ = c.FetchRooms(context.Background())
	}
	assert.Equal(t, gobreaker.StateClosed, c.BreakerState(), "client errors keep the breaker closed")

	status.Store(http.StatusBadGateway)
	for i := 0; i < 3; i++ {
		_, _ = c.FetchRooms(context.Background())
	}
	assert.Equal(t, gobreaker.StateOpen, c.BreakerState())

	_, err := c.FetchRooms(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestActionPaths(t *testing.T) {
	type call struct{ method, path, body string }
	var (
		mu  sync.Mutex
		got []call
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, call{r.Method, r.URL.EscapedPath(), string(raw)})
		mu.Unlock()
		switch r.URL.Path {
		case "/messages/m 1/read", "/reservations/res1/messages/read", "/notifications/n1/read":
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = io.WriteString(w, `{"id":"x"}`)
		}
	})
	ctx := context.Background()

	_, err := c.UpdateReservationStatus(ctx, "res1", domain.ReservationCheckedIn)
	require.NoError(t, err)
	_, err = c.UpdateRoomStatus(ctx, "r101", domain.RoomCleaning)
	require.NoError(t, err)
	require.NoError(t, c.MarkMessageRead(ctx, "m 1"))
	require.NoError(t, c.MarkConversationRead(ctx, "res1", domain.SenderReception))
	_, err = c.UpdateServiceRequestStatus(ctx, "sr1", domain.RequestInProgress)
	require.NoError(t, err)
	require.NoError(t, c.MarkNotificationRead(ctx, "n1"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []call{
		{http.MethodPatch, "/reservations/res1/status", `{"status":"checked-in"}`},
		{http.MethodPatch, "/rooms/r101/status", `{"status":"cleaning"}`},
		{http.MethodPost, "/messages/m%201/read", ``},
		{http.MethodPost, "/reservations/res1/messages/read", `{"reader":"reception"}`},
		{http.MethodPatch, "/service-requests/sr1/status", `{"status":"in-progress"}`},
		{http.MethodPost, "/notifications/n1/read", ``},
	}, got)
}
