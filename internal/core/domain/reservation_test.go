package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

func TestReservationStatus_CanTransition(t *testing.T) {
	all := []domain.ReservationStatus{
		domain.ReservationConfirmed,
		domain.ReservationCheckedIn,
		domain.ReservationCheckedOut,
		domain.ReservationCancelled,
	}
	allowed := map[[2]domain.ReservationStatus]bool{
		{domain.ReservationConfirmed, domain.ReservationCheckedIn}:  true,
		{domain.ReservationConfirmed, domain.ReservationCancelled}:  true,
		{domain.ReservationCheckedIn, domain.ReservationCheckedOut}: true,
		{domain.ReservationCheckedIn, domain.ReservationCancelled}:  true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]domain.ReservationStatus{from, to}]
			assert.Equal(t, want, from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestRoomStatusAfter(t *testing.T) {
	tests := []struct {
		from, to     domain.ReservationStatus
		wantStatus   domain.RoomStatus
		wantAffected bool
	}{
		{domain.ReservationConfirmed, domain.ReservationCheckedIn, domain.RoomOccupied, true},
		{domain.ReservationCheckedIn, domain.ReservationCheckedOut, domain.RoomCleaning, true},
		{domain.ReservationCheckedIn, domain.ReservationCancelled, domain.RoomCleaning, true},
		{domain.ReservationConfirmed, domain.ReservationCancelled, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			status, affected := domain.RoomStatusAfter(tt.from, tt.to)
			assert.Equal(t, tt.wantAffected, affected)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestReservationStatus_Billable(t *testing.T) {
	assert.True(t, domain.ReservationCheckedIn.Billable())
	assert.True(t, domain.ReservationCheckedOut.Billable())
	assert.False(t, domain.ReservationConfirmed.Billable())
	assert.False(t, domain.ReservationCancelled.Billable())
}

func TestRequestStatus_CanTransition(t *testing.T) {
	assert.True(t, domain.RequestPending.CanTransition(domain.RequestInProgress))
	assert.True(t, domain.RequestPending.CanTransition(domain.RequestCancelled))
	assert.True(t, domain.RequestInProgress.CanTransition(domain.RequestCompleted))
	assert.False(t, domain.RequestPending.CanTransition(domain.RequestCompleted))
	assert.False(t, domain.RequestCompleted.CanTransition(domain.RequestCancelled))
	assert.False(t, domain.RequestCancelled.CanTransition(domain.RequestPending))
}
