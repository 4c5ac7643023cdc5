// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Age      any // string or number, stored as supplied
	Password string
}

// UpdateAccountInput defines a credentialed partial update of one account.
type UpdateAccountInput struct {
	Email    string
	Password string
	// Patch is merged into the record field by field. A "password" entry sets
	// a new password; "email" may only repeat the current email. A nil Patch
	// is an unreadable body and fails as an invalid patch once the caller is
	// authorized.
	Patch map[string]any
}

// --- Output DTOs ---

// AccountOutput carries the sanitized record. It never contains the password hash.
type AccountOutput struct {
	Profile entity.Profile
}

// AccountUsecase defines the account operations exposed to the delivery layer.
//
// Every error carries a domain kind (see domainerrors.KindOf). GetAccount
// reports a missing account before checking credentials; UpdateAccount and
// DeleteAccount check credentials first.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AccountOutput, error)
	GetAccount(ctx context.Context, email, password string) (*AccountOutput, error)
	UpdateAccount(ctx context.Context, input *UpdateAccountInput) (*AccountOutput, error)
	DeleteAccount(ctx context.Context, email, password string) error
}
