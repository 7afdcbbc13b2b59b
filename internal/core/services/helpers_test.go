package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/cache"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/test/mocks"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type harness struct {
	api      *mocks.MockHotelAPI
	cache    *cache.Cache
	sessions *mocks.MockSessionService
	events   *mocks.MockActionPublisher
	recorder *mocks.MockRecorder
	d        *Dispatcher
}

func newHarness(t *testing.T, session *domain.Session) *harness {
	t.Helper()
	h := &harness{
		api:      mocks.NewMockHotelAPI(),
		cache:    cache.New(),
		sessions: mocks.NewMockSessionService(session),
		events:   mocks.NewMockActionPublisher(),
		recorder: mocks.NewMockRecorder(),
	}
	h.api.Now = func() time.Time { return testNow }
	h.d = NewDispatcher(h.api, h.cache, h.sessions,
		WithEventPublisher(h.events),
		WithRecorder(h.recorder),
		WithClock(func() time.Time { return testNow }),
	)
	seq := 0
	h.d.newID = func() string {
		seq++
		return fmt.Sprintf("pending-%d", seq)
	}
	return h
}

// seedRoom101 loads room 101 with guest Ana holding reservation res1 in
// the given status, on both the backend mock and the cache.
func (h *harness) seedRoom101(status domain.ReservationStatus, room domain.RoomStatus) {
	rooms := []domain.Room{
		mocks.CreateTestRoom("r101", "101", room),
		mocks.CreateTestRoom("r102", "102", domain.RoomAvailable),
	}
	reservations := []domain.Reservation{
		mocks.CreateTestReservation("res1", "g1", "r101", status, 45000),
	}
	guests := []domain.Guest{mocks.CreateTestGuest("g1", "Ana", "Rojas")}

	h.api.Rooms = append([]domain.Room(nil), rooms...)
	h.api.Reservations = append([]domain.Reservation(nil), reservations...)
	h.api.Guests = guests

	h.cache.Rooms.Replace(rooms)
	h.cache.Reservations.Replace(reservations)
	h.cache.Guests.Replace(guests)
}

func guest101() *domain.Session {
	return mocks.GuestSession("res1", "r101", "101")
}

func reception() *domain.Session {
	return mocks.StaffSession(domain.RoleReception)
}
