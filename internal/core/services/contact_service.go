package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/logging"
)

type contactService struct {
	api ports.HotelAPI
	log zerolog.Logger
}

func NewContactService(api ports.HotelAPI) ports.ContactService {
	return &contactService{api: api, log: logging.Component("contact")}
}

// Get merges the backend's partial contact info over the defaults. Any
// failure yields the defaults.
func (s *contactService) Get(ctx context.Context) domain.ContactInfo {
	defaults := domain.DefaultContactInfo()
	partial, err := s.api.FetchContactInfo(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("contact info unavailable, using defaults")
		return defaults
	}
	return partial.Merge(defaults)
}
