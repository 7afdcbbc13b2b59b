package cache

import "github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"

// Snapshot is a point-in-time copy of the cache for projectors.
type Snapshot struct {
	Guests          []domain.Guest
	Rooms           []domain.Room
	Reservations    []domain.Reservation
	Messages        []domain.Message
	ServiceRequests []domain.ServiceRequest
	Notifications   []domain.Notification
	Catalog         []domain.CatalogItem
}

// Snapshot copies every collection. Collections are read one after the
// other, so a concurrent writer may land between two of them.
func (c *Cache) Snapshot() Snapshot {
	return Snapshot{
		Guests:          c.Guests.List(),
		Rooms:           c.Rooms.List(),
		Reservations:    c.Reservations.List(),
		Messages:        c.Messages.List(),
		ServiceRequests: c.ServiceRequests.List(),
		Notifications:   c.Notifications.List(),
		Catalog:         c.Catalog.List(),
	}
}
