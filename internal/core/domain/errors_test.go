package domain_test

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

func TestError_IsMatchesByKind(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"validation", domain.NewValidationError("bad %s", "field"), domain.ErrValidation, true},
		{"network", domain.NewNetworkError(&net.OpError{Op: "dial"}), domain.ErrNetwork, true},
		{"server any status", domain.NewServerError(503, "down"), domain.ErrServer, true},
		{"server exact status", domain.NewServerError(503, "down"), domain.NewServerError(503, ""), true},
		{"server other status", domain.NewServerError(500, "boom"), domain.NewServerError(503, ""), false},
		{"wrapped", fmt.Errorf("refresh rooms: %w", domain.NewNotFoundError(domain.KindRooms, "r1")), domain.ErrNotFound, true},
		{"different kind", domain.NewConflictError("busy"), domain.ErrValidation, false},
		{"plain error", errors.New("x"), domain.ErrValidation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "SERVER(502): bad gateway", domain.NewServerError(502, "bad gateway").Error())
	assert.Equal(t, `NOT_FOUND: rooms "r9" not found`, domain.NewNotFoundError(domain.KindRooms, "r9").Error())
}

func TestNetworkError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.NewNetworkError(cause)

	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.KindForbidden, domain.KindOf(fmt.Errorf("wrap: %w", domain.NewForbiddenError("no"))))
	assert.Equal(t, domain.ErrorKind(""), domain.KindOf(errors.New("plain")))
	assert.Equal(t, domain.ErrorKind(""), domain.KindOf(nil))
}
