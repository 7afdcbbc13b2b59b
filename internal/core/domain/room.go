package domain

type RoomType string

const (
	RoomStandard     RoomType = "standard"
	RoomDeluxe       RoomType = "deluxe"
	RoomSuite        RoomType = "suite"
	RoomPresidential RoomType = "presidential"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomCleaning    RoomStatus = "cleaning"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID        string     `json:"id"`
	Number    string     `json:"number"`
	Floor     int        `json:"floor"`
	Type      RoomType   `json:"type"`
	Status    RoomStatus `json:"status"`
	Price     int64      `json:"price"`
	Capacity  int        `json:"capacity"`
	Amenities []string   `json:"amenities"`
}

func (r Room) EntityID() string { return r.ID }
