package projector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/cache"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/test/mocks"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// hotel is two occupied rooms of four, with two stays and a mixed inbox.
func hotel() cache.Snapshot {
	return cache.Snapshot{
		Guests: []domain.Guest{
			mocks.CreateTestGuest("g1", "Ana", "Rojas"),
			mocks.CreateTestGuest("g2", "Luis", "Pardo"),
		},
		Rooms: []domain.Room{
			mocks.CreateTestRoom("r101", "101", domain.RoomOccupied),
			mocks.CreateTestRoom("r102", "102", domain.RoomOccupied),
			mocks.CreateTestRoom("r103", "103", domain.RoomCleaning),
			mocks.CreateTestRoom("r104", "104", domain.RoomAvailable),
		},
		Reservations: []domain.Reservation{
			mocks.CreateTestReservation("res1", "g1", "r101", domain.ReservationCheckedIn, 45000),
			mocks.CreateTestReservation("res2", "g2", "r102", domain.ReservationCheckedIn, 30000),
			mocks.CreateTestReservation("res3", "g2", "r103", domain.ReservationCheckedOut, 20000),
			mocks.CreateTestReservation("res4", "g1", "r104", domain.ReservationConfirmed, 99000),
			mocks.CreateTestReservation("res5", "g1", "r104", domain.ReservationCancelled, 50000),
		},
		Messages: []domain.Message{
			{ID: "m1", ReservationID: "res1", RoomNumber: "101", Sender: domain.SenderGuest, Content: "Hi", Timestamp: t0},
			{ID: "m2", ReservationID: "res1", RoomNumber: "101", Sender: domain.SenderReception, Content: "Hello", Timestamp: t0.Add(time.Minute)},
			{ID: "m3", ReservationID: "res2", RoomNumber: "102", Sender: domain.SenderGuest, Content: "Taxi?", Timestamp: t0.Add(2 * time.Minute)},
			{ID: "m4", ReservationID: "res2", RoomNumber: "102", Sender: domain.SenderGuest, Content: "At 6", Timestamp: t0.Add(3 * time.Minute), Read: true},
		},
		ServiceRequests: []domain.ServiceRequest{
			{ID: "q1", ReservationID: "res1", Status: domain.RequestPending},
			{ID: "q2", ReservationID: "res2", Status: domain.RequestInProgress},
			{ID: "q3", ReservationID: "res2", Status: domain.RequestCompleted},
		},
		Notifications: []domain.Notification{
			{ID: "n1", Title: "Pool open"},
			{ID: "n2", ReservationID: "res1", Title: "Bill ready", Read: true},
			{ID: "n3", ReservationID: "res2", Title: "Bill ready"},
			{ID: "n4", RoomNumber: "101", Title: "Maintenance visit"},
		},
		Catalog: []domain.CatalogItem{
			mocks.CreateTestCatalogItem("c1", "Club Sandwich", 12000, true),
			mocks.CreateTestCatalogItem("c2", "Lobster", 50000, false),
		},
	}
}

func ids[T domain.Entity](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.EntityID())
	}
	return out
}

func TestGuest_OnlySeesOwnStay(t *testing.T) {
	sc := domain.GuestScope{ReservationID: "res1", RoomID: "r101", RoomNumber: "101"}

	v := Guest(sc, hotel())

	require.NotNil(t, v.Reservation)
	assert.Equal(t, "res1", v.Reservation.ID)
	require.NotNil(t, v.Room)
	assert.Equal(t, "101", v.Room.Number)
	assert.Equal(t, []string{"m1", "m2"}, ids(v.Messages))
	assert.Equal(t, 1, v.UnreadMessages, "only reception messages count")
	assert.Equal(t, []string{"n1", "n2", "n4"}, ids(v.Notifications))
	assert.Equal(t, 2, v.UnreadNotifications)
	assert.Equal(t, []string{"q1"}, ids(v.ServiceRequests))
	assert.Equal(t, []string{"c1"}, ids(v.Catalog))
}

func TestGuest_RoomFromReservationOrNumber(t *testing.T) {
	v := Guest(domain.GuestScope{ReservationID: "res2"}, hotel())
	require.NotNil(t, v.Room)
	assert.Equal(t, "r102", v.Room.ID)

	v = Guest(domain.GuestScope{ReservationID: "gone", RoomNumber: "103"}, hotel())
	assert.Nil(t, v.Reservation)
	require.NotNil(t, v.Room)
	assert.Equal(t, "r103", v.Room.ID)
}

func TestGuest_EmptySnapshotHasEmptySlices(t *testing.T) {
	v := Guest(domain.GuestScope{ReservationID: "res1"}, cache.Snapshot{})

	assert.NotNil(t, v.Messages)
	assert.NotNil(t, v.Notifications)
	assert.NotNil(t, v.ServiceRequests)
	assert.NotNil(t, v.Catalog)
	assert.Nil(t, v.Room)
}

func TestReception_ConversationsAndBadges(t *testing.T) {
	v := Reception(hotel())

	require.Len(t, v.Conversations, 2)
	assert.Equal(t, "res1", v.Conversations[0].ReservationID)
	assert.Equal(t, 1, v.Conversations[0].Unread)
	assert.Equal(t, "m2", v.Conversations[0].LastMessage.ID)
	assert.Equal(t, "102", v.Conversations[1].RoomNumber)
	assert.Equal(t, 1, v.Conversations[1].Unread)
	assert.Equal(t, "m4", v.Conversations[1].LastMessage.ID)

	assert.Equal(t, Badges{UnreadMessages: 2, PendingRequests: 1, OpenRequests: 2}, v.Badges)
	assert.Len(t, v.Guests, 2)
	assert.Len(t, v.Notifications, 4)
}

func TestReception_EmptySnapshot(t *testing.T) {
	v := Reception(cache.Snapshot{})

	assert.NotNil(t, v.Rooms)
	assert.NotNil(t, v.Conversations)
	assert.Zero(t, v.Badges)
}

func TestComputeMetrics(t *testing.T) {
	m := ComputeMetrics(hotel())

	assert.Equal(t, 4, m.TotalRooms)
	assert.Equal(t, 2, m.OccupiedRooms)
	assert.InDelta(t, 0.5, m.OccupancyRate, 1e-9)
	assert.Equal(t, int64(95000), m.Revenue, "checked-in and checked-out stays only")
	assert.Equal(t, 2, m.ActiveStays)
	assert.Equal(t, map[domain.RoomStatus]int{
		domain.RoomOccupied:  2,
		domain.RoomCleaning:  1,
		domain.RoomAvailable: 1,
	}, m.RoomsByStatus)
}

func TestComputeMetrics_NoRooms(t *testing.T) {
	m := ComputeMetrics(cache.Snapshot{})

	assert.Zero(t, m.TotalRooms)
	assert.Zero(t, m.OccupancyRate)
	assert.Zero(t, m.Revenue)
}

func TestProject(t *testing.T) {
	snap := hotel()
	tests := []struct {
		name    string
		session *domain.Session
		want    string
	}{
		{"guest", mocks.GuestSession("res1", "r101", "101"), "guest"},
		{"reception", mocks.StaffSession(domain.RoleReception), "reception"},
		{"admin", mocks.StaffSession(domain.RoleAdmin), "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Project(*tt.session, snap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.ScopeName())
		})
	}

	admin, err := Project(*mocks.StaffSession(domain.RoleAdmin), snap)
	require.NoError(t, err)
	assert.Equal(t, 4, admin.(*AdminView).Metrics.TotalRooms)

	_, err = Project(*mocks.StaffSession("housekeeping"), snap)
	assert.Error(t, err)

	_, err = Project(domain.Session{UserID: "nobody"}, snap)
	assert.Error(t, err)
}
