package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

type fakeChannel struct {
	mu        sync.Mutex
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testEvent() ports.ActionEvent {
	return ports.ActionEvent{
		Action:     "transition_reservation",
		EntityKind: "reservations",
		EntityID:   "res1",
		Scope:      "reception",
		UserID:     "staff-1",
		OccurredAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}
}

func TestPublishActionEvent(t *testing.T) {
	ch := &fakeChannel{}
	broker := newBroker(nil, ch, "hotel.actions")

	require.NoError(t, broker.PublishActionEvent(context.Background(), testEvent()))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "hotel.actions", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "transition_reservation", msg.Type)

	var got ports.ActionEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, testEvent(), got)
}

func TestPublishActionEvent_ExpiredContext(t *testing.T) {
	ch := &fakeChannel{}
	broker := newBroker(nil, ch, "hotel.actions")

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	err := broker.PublishActionEvent(ctx, testEvent())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, ch.published)
}

func TestPublishActionEvent_BreakerOpensAfterFailures(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	broker := newBroker(nil, ch, "hotel.actions")

	for i := 0; i < 3; i++ {
		assert.Error(t, broker.PublishActionEvent(context.Background(), testEvent()))
	}
	assert.Equal(t, gobreaker.StateOpen, broker.BreakerState())

	err := broker.PublishActionEvent(context.Background(), testEvent())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestClose(t *testing.T) {
	ch := &fakeChannel{}
	broker := newBroker(nil, ch, "hotel.actions")

	require.NoError(t, broker.Close())
	assert.True(t, ch.closed)
}
