package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

// MockActionPublisher implements ports.ActionEventPublisher for testing
// without a RabbitMQ connection.
type MockActionPublisher struct {
	mu sync.RWMutex

	// Track published events for verification
	PublishedEvents []ports.ActionEvent

	// Error injection for testing error scenarios
	PublishError error

	// Track number of calls
	PublishCallCount int
}

// Ensure MockActionPublisher implements ports.ActionEventPublisher at compile time.
var _ ports.ActionEventPublisher = (*MockActionPublisher)(nil)

func NewMockActionPublisher() *MockActionPublisher {
	return &MockActionPublisher{
		PublishedEvents: make([]ports.ActionEvent, 0),
	}
}

func (m *MockActionPublisher) PublishActionEvent(ctx context.Context, evt ports.ActionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// GetPublishedEvents returns a copy of the published events.
func (m *MockActionPublisher) GetPublishedEvents() []ports.ActionEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.ActionEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

func (m *MockActionPublisher) GetPublishCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PublishCallCount
}

// Reset clears all tracking data.
func (m *MockActionPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishedEvents = make([]ports.ActionEvent, 0)
	m.PublishError = nil
	m.PublishCallCount = 0
}

// MockRecorder implements ports.ActionRecorder and keeps every outcome.
type MockRecorder struct {
	mu       sync.Mutex
	Actions  map[string][]string
	Refreshes map[string][]string
}

var _ ports.ActionRecorder = (*MockRecorder)(nil)

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{
		Actions:  make(map[string][]string),
		Refreshes: make(map[string][]string),
	}
}

func (m *MockRecorder) RecordAction(action, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Actions[action] = append(m.Actions[action], outcome)
}

func (m *MockRecorder) RecordRefresh(kind, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refreshes[kind] = append(m.Refreshes[kind], outcome)
}

// ActionOutcomes returns the recorded outcomes of action in call order.
func (m *MockRecorder) ActionOutcomes(action string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Actions[action]...)
}

func (m *MockRecorder) RefreshOutcomes(kind string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Refreshes[kind]...)
}
