// Package mocks provides mock implementations of port interfaces for testing.
// The core depends on ports only, so tests inject these in place of the
// HTTP client, Redis and RabbitMQ adapters.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

// MockHotelAPI implements ports.HotelAPI over in-memory collections.
// Actions mutate the seeded collections the way the backend would.
type MockHotelAPI struct {
	mu sync.Mutex

	Guests          []domain.Guest
	Rooms           []domain.Room
	Reservations    []domain.Reservation
	Messages        []domain.Message
	ServiceRequests []domain.ServiceRequest
	Notifications   []domain.Notification
	Catalog         []domain.CatalogItem
	Contact         *domain.PartialContactInfo

	// Sessions returned by the authenticate calls.
	StaffSession *domain.Session
	GuestSession *domain.Session

	// Call tracking for verification
	Calls []string

	// Error injection keyed by method name, e.g. "SendMessage".
	Errors map[string]error

	// OnCall runs before every method returns, outside the lock.
	OnCall func(method string)

	Now    func() time.Time
	nextID int
}

// Ensure MockHotelAPI implements ports.HotelAPI at compile time.
var _ ports.HotelAPI = (*MockHotelAPI)(nil)

func NewMockHotelAPI() *MockHotelAPI {
	return &MockHotelAPI{
		Errors: make(map[string]error),
		Now:    time.Now,
	}
}

// Fail makes method return err until cleared with Fail(method, nil).
func (m *MockHotelAPI) Fail(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.Errors, method)
		return
	}
	m.Errors[method] = err
}

// CallCount returns how many times method was invoked.
func (m *MockHotelAPI) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (m *MockHotelAPI) enter(method string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, method)
	err := m.Errors[method]
	hook := m.OnCall
	m.mu.Unlock()
	if hook != nil {
		hook(method)
	}
	return err
}

func (m *MockHotelAPI) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *MockHotelAPI) AuthenticateStaff(ctx context.Context, creds domain.StaffCredentials) (*domain.Session, error) {
	if err := m.enter("AuthenticateStaff"); err != nil {
		return nil, err
	}
	if m.StaffSession == nil {
		return nil, domain.ErrInvalidCredentials
	}
	s := *m.StaffSession
	return &s, nil
}

func (m *MockHotelAPI) AuthenticateGuest(ctx context.Context, creds domain.GuestCredentials) (*domain.Session, error) {
	if err := m.enter("AuthenticateGuest"); err != nil {
		return nil, err
	}
	if m.GuestSession == nil {
		return nil, domain.ErrInvalidCredentials
	}
	s := *m.GuestSession
	return &s, nil
}

func (m *MockHotelAPI) FetchGuests(ctx context.Context) ([]domain.Guest, error) {
	if err := m.enter("FetchGuests"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Guest(nil), m.Guests...), nil
}

func (m *MockHotelAPI) FetchRooms(ctx context.Context) ([]domain.Room, error) {
	if err := m.enter("FetchRooms"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Room(nil), m.Rooms...), nil
}

func (m *MockHotelAPI) FetchReservations(ctx context.Context) ([]domain.Reservation, error) {
	if err := m.enter("FetchReservations"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Reservation(nil), m.Reservations...), nil
}

func (m *MockHotelAPI) FetchMessages(ctx context.Context) ([]domain.Message, error) {
	if err := m.enter("FetchMessages"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Message(nil), m.Messages...), nil
}

func (m *MockHotelAPI) FetchServiceRequests(ctx context.Context) ([]domain.ServiceRequest, error) {
	if err := m.enter("FetchServiceRequests"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ServiceRequest(nil), m.ServiceRequests...), nil
}

func (m *MockHotelAPI) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	if err := m.enter("FetchNotifications"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notification(nil), m.Notifications...), nil
}

func (m *MockHotelAPI) FetchCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	if err := m.enter("FetchCatalog"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CatalogItem(nil), m.Catalog...), nil
}

func (m *MockHotelAPI) FetchContactInfo(ctx context.Context) (*domain.PartialContactInfo, error) {
	if err := m.enter("FetchContactInfo"); err != nil {
		return nil, err
	}
	if m.Contact == nil {
		return &domain.PartialContactInfo{}, nil
	}
	c := *m.Contact
	return &c, nil
}

func (m *MockHotelAPI) CreateReservation(ctx context.Context, in domain.NewReservation) (*domain.Reservation, error) {
	if err := m.enter("CreateReservation"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r := domain.Reservation{
		ID:          m.id("res"),
		GuestID:     in.GuestID,
		RoomID:      in.RoomID,
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		Status:      domain.ReservationConfirmed,
		TotalAmount: in.TotalAmount,
		Notes:       in.Notes,
	}
	m.Reservations = append(m.Reservations, r)
	return &r, nil
}

func (m *MockHotelAPI) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	if err := m.enter("UpdateReservationStatus"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Reservations {
		if m.Reservations[i].ID == id {
			m.Reservations[i].Status = status
			r := m.Reservations[i]
			return &r, nil
		}
	}
	return nil, domain.NewServerError(404, "reservation not found")
}

func (m *MockHotelAPI) UpdateRoomStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error) {
	if err := m.enter("UpdateRoomStatus"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Rooms {
		if m.Rooms[i].ID == id {
			m.Rooms[i].Status = status
			r := m.Rooms[i]
			return &r, nil
		}
	}
	return nil, domain.NewServerError(404, "room not found")
}

func (m *MockHotelAPI) SendMessage(ctx context.Context, in domain.NewMessage) (*domain.Message, error) {
	if err := m.enter("SendMessage"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := domain.Message{
		ID:            m.id("msg"),
		ReservationID: in.ReservationID,
		RoomNumber:    in.RoomNumber,
		Content:       in.Content,
		Sender:        in.Sender,
		Timestamp:     m.Now(),
	}
	m.Messages = append(m.Messages, msg)
	return &msg, nil
}

func (m *MockHotelAPI) MarkMessageRead(ctx context.Context, id string) error {
	return m.enter("MarkMessageRead")
}

func (m *MockHotelAPI) MarkConversationRead(ctx context.Context, reservationID string, reader domain.Sender) error {
	return m.enter("MarkConversationRead")
}

func (m *MockHotelAPI) CreateServiceRequest(ctx context.Context, in domain.NewServiceRequest) (*domain.ServiceRequest, error) {
	if err := m.enter("CreateServiceRequest"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r := domain.ServiceRequest{
		ID:            m.id("req"),
		ReservationID: in.ReservationID,
		RoomNumber:    in.RoomNumber,
		GuestName:     in.GuestName,
		Type:          in.Type,
		Details:       in.Details,
		Priority:      in.Priority,
		Status:        domain.RequestPending,
		CreatedAt:     m.Now(),
	}
	m.ServiceRequests = append(m.ServiceRequests, r)
	return &r, nil
}

func (m *MockHotelAPI) UpdateServiceRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	if err := m.enter("UpdateServiceRequestStatus"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ServiceRequests {
		if m.ServiceRequests[i].ID == id {
			m.ServiceRequests[i].Status = status
			if status == domain.RequestCompleted {
				now := m.Now()
				m.ServiceRequests[i].CompletedAt = &now
			}
			r := m.ServiceRequests[i]
			return &r, nil
		}
	}
	return nil, domain.NewServerError(404, "service request not found")
}

func (m *MockHotelAPI) CreateNotification(ctx context.Context, in domain.NewNotification) (*domain.Notification, error) {
	if err := m.enter("CreateNotification"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := domain.Notification{
		ID:            m.id("ntf"),
		ReservationID: in.ReservationID,
		RoomNumber:    in.RoomNumber,
		Title:         in.Title,
		Message:       in.Message,
		Type:          in.Type,
		CreatedAt:     m.Now(),
	}
	m.Notifications = append(m.Notifications, n)
	return &n, nil
}

func (m *MockHotelAPI) MarkNotificationRead(ctx context.Context, id string) error {
	return m.enter("MarkNotificationRead")
}
