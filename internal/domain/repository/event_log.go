package repository

import (
	"context"

	"accounts/internal/domain/service"
)

// EventLog keeps an append-only audit trail of delivered account events
type EventLog interface {
	// Append stores an event. Appending the same event id twice keeps one copy.
	Append(ctx context.Context, event *service.AccountEvent) error
}
