package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/test/mocks"
)

func TestContactService_MergesOverDefaults(t *testing.T) {
	phone := "+57 1 234 5678"
	api := mocks.NewMockHotelAPI()
	api.Contact = &domain.PartialContactInfo{Phone: &phone}

	info := NewContactService(api).Get(context.Background())

	defaults := domain.DefaultContactInfo()
	assert.Equal(t, phone, info.Phone)
	assert.Equal(t, defaults.Email, info.Email)
	assert.Equal(t, defaults.Hours, info.Hours)
}

func TestContactService_FallsBackOnError(t *testing.T) {
	api := mocks.NewMockHotelAPI()
	api.Fail("FetchContactInfo", domain.NewNetworkError(errors.New("offline")))

	info := NewContactService(api).Get(context.Background())

	assert.Equal(t, domain.DefaultContactInfo(), info)
}
