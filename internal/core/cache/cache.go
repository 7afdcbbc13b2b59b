// Package cache holds the client-side shadow of backend-owned entities.
package cache

import (
	"sync"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// Cache groups one collection per entity kind. It is created once per
// client session and passed to dispatchers and projectors explicitly.
type Cache struct {
	Guests          *Collection[domain.Guest]
	Rooms           *Collection[domain.Room]
	Reservations    *Collection[domain.Reservation]
	Messages        *Collection[domain.Message]
	ServiceRequests *Collection[domain.ServiceRequest]
	Notifications   *Collection[domain.Notification]
	Catalog         *Collection[domain.CatalogItem]

	mu          sync.RWMutex
	subscribers map[int]func(domain.Kind)
	nextSub     int
}

func New() *Cache {
	c := &Cache{subscribers: make(map[int]func(domain.Kind))}
	c.Guests = newCollection[domain.Guest](domain.KindGuests, Append, nil, c.notify)
	c.Rooms = newCollection(domain.KindRooms, Append, func(a, b domain.Room) int {
		return compareNumbers(a.Number, b.Number)
	}, c.notify)
	c.Reservations = newCollection[domain.Reservation](domain.KindReservations, Append, nil, c.notify)
	c.Messages = newCollection(domain.KindMessages, Append, func(a, b domain.Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	}, c.notify)
	c.ServiceRequests = newCollection[domain.ServiceRequest](domain.KindServiceRequests, Append, nil, c.notify)
	c.Notifications = newCollection(domain.KindNotifications, Prepend, func(a, b domain.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	}, c.notify)
	c.Catalog = newCollection[domain.CatalogItem](domain.KindCatalog, Append, nil, c.notify)
	return c
}

// Subscribe registers fn to be called after every change to any kind.
// fn runs on the writer's goroutine and must not block.
func (c *Cache) Subscribe(fn func(domain.Kind)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// Reset empties every collection. Called when the session ends.
func (c *Cache) Reset() {
	c.Guests.reset()
	c.Rooms.reset()
	c.Reservations.reset()
	c.Messages.reset()
	c.ServiceRequests.reset()
	c.Notifications.reset()
	c.Catalog.reset()
	for _, k := range domain.AllKinds {
		c.notify(k)
	}
}

// Counts returns the number of cached entities per kind.
func (c *Cache) Counts() map[domain.Kind]int {
	return map[domain.Kind]int{
		domain.KindGuests:          c.Guests.Len(),
		domain.KindRooms:           c.Rooms.Len(),
		domain.KindReservations:    c.Reservations.Len(),
		domain.KindMessages:        c.Messages.Len(),
		domain.KindServiceRequests: c.ServiceRequests.Len(),
		domain.KindNotifications:   c.Notifications.Len(),
		domain.KindCatalog:         c.Catalog.Len(),
	}
}

func (c *Cache) notify(kind domain.Kind) {
	c.mu.RLock()
	subs := make([]func(domain.Kind), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.RUnlock()
	for _, fn := range subs {
		fn(kind)
	}
}

// compareNumbers orders room numbers numerically when both are numeric.
func compareNumbers(a, b string) int {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return len(a) - len(b)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
