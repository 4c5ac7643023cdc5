package auth

import (
	"context"
	"log/slog"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
)

// credentialAuthorizer admits a caller whose password matches the stored hash.
type credentialAuthorizer struct {
	store  repository.UserStore
	hasher service.PasswordHasher
	logger *slog.Logger
}

// NewCredentialAuthorizer creates an Authorizer backed by the user store.
func NewCredentialAuthorizer(
	store repository.UserStore,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) service.Authorizer {
	return &credentialAuthorizer{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// Validate implements service.Authorizer.
func (a *credentialAuthorizer) Validate(ctx context.Context, email, password string) bool {
	if password == "" {
		return false
	}

	table, err := a.store.Load(ctx)
	if err != nil {
		logger := deliverycontext.GetLoggerOrDefault(ctx, a.logger)
		logger.WarnContext(ctx, "Credential check could not load user table",
			slog.String("email", email),
			slog.Any("error", err),
		)

		return false
	}

	user, ok := table.Get(email)
	if !ok {
		return false
	}

	return a.hasher.Check(password, user.PasswordHash)
}
