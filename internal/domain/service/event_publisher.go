package service

import (
	"context"
	"time"
)

// AccountEventType names a committed change to the user table.
type AccountEventType string

const (
	AccountCreated AccountEventType = "account.created"
	AccountUpdated AccountEventType = "account.updated"
	AccountDeleted AccountEventType = "account.deleted"
)

// AccountEvent is published after a change has been saved.
// It never carries a password or a password hash.
type AccountEvent struct {
	EventID    string           `json:"event_id"`
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	Type       AccountEventType `json:"type"`
	Email      string           `json:"email"`
	Fields     []string         `json:"fields,omitempty"` // Fields touched by an update
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account change for downstream consumers
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
