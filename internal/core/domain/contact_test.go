package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

func ptr(s string) *string { return &s }

func TestPartialContactInfo_Merge(t *testing.T) {
	defaults := domain.DefaultContactInfo()

	merged := domain.PartialContactInfo{
		Phone:  ptr("+1 555 0100"),
		Email:  ptr(""),
		Social: &domain.PartialSocialLinks{Instagram: ptr("https://instagram.com/other")},
		Hours:  &domain.PartialOpeningHours{Restaurant: ptr("07:00 - 23:00")},
	}.Merge(defaults)

	assert.Equal(t, "+1 555 0100", merged.Phone)
	assert.Equal(t, defaults.Email, merged.Email, "empty values keep the default")
	assert.Equal(t, defaults.Address, merged.Address)
	assert.Equal(t, "https://instagram.com/other", merged.Social.Instagram)
	assert.Equal(t, defaults.Social.Facebook, merged.Social.Facebook)
	assert.Equal(t, "07:00 - 23:00", merged.Hours.Restaurant)
	assert.Equal(t, defaults.Hours.Reception, merged.Hours.Reception)
}

func TestPartialContactInfo_EmptyKeepsDefaults(t *testing.T) {
	assert.Equal(t, domain.DefaultContactInfo(), domain.PartialContactInfo{}.Merge(domain.DefaultContactInfo()))
}

func TestCart_Total(t *testing.T) {
	cart := &domain.Cart{Lines: []domain.CartLine{
		{ItemID: "c1", Price: 12000, Quantity: 2},
		{ItemID: "c2", Price: 8000, Quantity: 1},
	}}

	assert.Equal(t, int64(32000), cart.Total())
	assert.False(t, cart.Empty())

	cart.Clear()
	assert.True(t, cart.Empty())
	assert.Equal(t, int64(0), cart.Total())
}
