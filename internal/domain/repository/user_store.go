// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"accounts/internal/domain/entity"
)

// UserStore persists the whole user table as one unit.
// Implementations return errors that satisfy errors.Is(err, domainerrors.ErrStorage).
type UserStore interface {
	// Load returns the full table. When nothing has been persisted yet it first
	// persists an empty table and returns it.
	Load(ctx context.Context) (entity.Table, error)

	// Save replaces the persisted table with the given one.
	Save(ctx context.Context, table entity.Table) error
}
