package ports

import (
	"context"
	"time"
)

// ActionEvent describes a dispatcher action the backend acknowledged.
type ActionEvent struct {
	Action     string    `json:"action"`
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
	Scope      string    `json:"scope"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ActionEventPublisher interface {
	PublishActionEvent(ctx context.Context, evt ActionEvent) error
}

// ActionRecorder receives dispatcher and refresh outcomes for metrics.
type ActionRecorder interface {
	RecordAction(action string, outcome string, elapsed time.Duration)
	RecordRefresh(kind string, outcome string)
}
