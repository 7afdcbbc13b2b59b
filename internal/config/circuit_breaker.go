package config

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// NewCircuitBreaker creates a circuit breaker with standard settings.
// The name parameter uniquely identifies the circuit breaker instance.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	var timeout time.Duration

	// Open-state duration per dependency
	switch name {
	case "Redis-Session":
		timeout = time.Second * 5
	case "Hotel-API":
		timeout = time.Second * 15
	default:
		timeout = time.Second * 30 // RabbitMQ and other operations
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Open circuit after 3 consecutive failures
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: dependencyHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Error().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})
}

// dependencyHealthy treats caller mistakes (validation, auth, 4xx) as
// healthy responses so they never trip the breaker.
func dependencyHealthy(err error) bool {
	if err == nil {
		return true
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		return false
	}
	switch de.Kind {
	case domain.KindNetwork:
		return false
	case domain.KindServer:
		return de.Status < 500
	}
	return true
}
