package domain

// Kind names an entity collection.
type Kind string

const (
	KindGuests          Kind = "guests"
	KindRooms           Kind = "rooms"
	KindReservations    Kind = "reservations"
	KindMessages        Kind = "messages"
	KindServiceRequests Kind = "service-requests"
	KindNotifications   Kind = "notifications"
	KindCatalog         Kind = "catalog"
)

// AllKinds lists every cached collection in refresh order.
var AllKinds = []Kind{
	KindGuests,
	KindRooms,
	KindReservations,
	KindMessages,
	KindServiceRequests,
	KindNotifications,
	KindCatalog,
}

// Entity is anything the cache can key by id.
type Entity interface {
	EntityID() string
}
