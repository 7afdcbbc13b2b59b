package domain

import "time"

type ServiceType string

const (
	ServiceRoomService  ServiceType = "room-service"
	ServiceHousekeeping ServiceType = "housekeeping"
	ServiceTransport    ServiceType = "transport"
)

type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "in-progress"
	RequestCompleted  RequestStatus = "completed"
	RequestCancelled  RequestStatus = "cancelled"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:    {RequestInProgress, RequestCancelled},
	RequestInProgress: {RequestCompleted, RequestCancelled},
}

func (s RequestStatus) CanTransition(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestInProgress, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// Open reports whether the request still needs staff attention.
func (s RequestStatus) Open() bool {
	return s == RequestPending || s == RequestInProgress
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ServiceRequest struct {
	ID            string        `json:"id"`
	ReservationID string        `json:"reservationId"`
	RoomNumber    string        `json:"roomNumber"`
	GuestName     string        `json:"guestName"`
	Type          ServiceType   `json:"type"`
	Status        RequestStatus `json:"status"`
	Details       string        `json:"details"`
	Priority      Priority      `json:"priority"`
	CreatedAt     time.Time     `json:"createdAt"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
}

func (r ServiceRequest) EntityID() string { return r.ID }

// NewServiceRequest carries what the caller provides. RoomNumber and
// GuestName are filled in from the cached reservation.
type NewServiceRequest struct {
	ReservationID string      `json:"reservationId" validate:"required"`
	RoomNumber    string      `json:"roomNumber"`
	GuestName     string      `json:"guestName"`
	Type          ServiceType `json:"type" validate:"required,oneof=room-service housekeeping transport"`
	Details       string      `json:"details" validate:"required,max=4000"`
	Priority      Priority    `json:"priority" validate:"omitempty,oneof=low medium high"`
}
