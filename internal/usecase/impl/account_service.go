// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"slices"
	"time"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager  repository.TransactionManager
	authorizer service.Authorizer
	hasher     service.PasswordHasher
	publisher  service.EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	Authorizer service.Authorizer
	Hasher     service.PasswordHasher
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:  params.TxManager,
		authorizer: params.Authorizer,
		hasher:     params.Hasher,
		publisher:  params.Publisher,
		logger:     params.Logger,
		now:        time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account. Registration needs no credentials.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AccountOutput, error) {
	if input.Email == "" || input.Password == "" || isMissing(input.Age) {
		return nil, domainerrors.ErrValidationFailed
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	var created *entity.User
	err := srv.txManager.Execute(ctx, func(ctx context.Context, store repository.UserStore) error {
		table, err := store.Load(ctx)
		if err != nil {
			return err
		}

		if table.Has(input.Email) {
			return domainerrors.ErrUserAlreadyExists
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return err
		}

		created = &entity.User{
			Email:        input.Email,
			Age:          input.Age,
			PasswordHash: hash,
		}
		table.Put(created)

		return store.Save(ctx, table)
	})
	if err != nil {
		srv.logFailure(ctx, "Registration failed", input.Email, err)

		return nil, errors.Wrap(err, "failed to register account")
	}

	srv.publish(ctx, service.AccountCreated, input.Email, nil)

	return &usecase.AccountOutput{Profile: created.Public()}, nil
}

// GetAccount returns the sanitized record. A missing account is reported
// before the credentials are checked.
func (srv *accountService) GetAccount(ctx context.Context, email, password string) (*usecase.AccountOutput, error) {
	var found *entity.User
	err := srv.txManager.Execute(ctx, func(ctx context.Context, store repository.UserStore) error {
		table, err := store.Load(ctx)
		if err != nil {
			return err
		}

		user, ok := table.Get(email)
		if !ok {
			return domainerrors.ErrUserNotFound
		}

		if !srv.authorizer.Validate(ctx, email, password) {
			return domainerrors.ErrUnauthorized
		}

		found = user

		return nil
	})
	if err != nil {
		srv.logFailure(ctx, "Account lookup failed", email, err)

		return nil, errors.Wrap(err, "failed to get account")
	}

	return &usecase.AccountOutput{Profile: found.Public()}, nil
}

// UpdateAccount merges the patch into the record after the credentials are checked.
func (srv *accountService) UpdateAccount(ctx context.Context, input *usecase.UpdateAccountInput) (*usecase.AccountOutput, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(ctx context.Context, store repository.UserStore) error {
		if !srv.authorizer.Validate(ctx, input.Email, input.Password) {
			return domainerrors.ErrUnauthorized
		}
		if input.Patch == nil {
			return domainerrors.ErrInvalidPatch.WithDetails("update body must be a JSON object")
		}

		table, err := store.Load(ctx)
		if err != nil {
			return err
		}

		user, ok := table.Get(input.Email)
		if !ok {
			return domainerrors.ErrUserNotFound
		}

		patch, err := srv.preparePatch(input.Email, input.Patch)
		if err != nil {
			return err
		}

		if patch.passwordHash != "" {
			user.PasswordHash = patch.passwordHash
		}
		user.Apply(patch.fields)

		if err := store.Save(ctx, table); err != nil {
			return err
		}
		updated = user

		return nil
	})
	if err != nil {
		srv.logFailure(ctx, "Account update failed", input.Email, err)

		return nil, errors.Wrap(err, "failed to update account")
	}

	srv.publish(ctx, service.AccountUpdated, input.Email, patchKeys(input.Patch))

	return &usecase.AccountOutput{Profile: updated.Public()}, nil
}

// DeleteAccount removes the record after the credentials are checked.
func (srv *accountService) DeleteAccount(ctx context.Context, email, password string) error {
	err := srv.txManager.Execute(ctx, func(ctx context.Context, store repository.UserStore) error {
		if password == "" || !srv.authorizer.Validate(ctx, email, password) {
			return domainerrors.ErrUnauthorized
		}

		table, err := store.Load(ctx)
		if err != nil {
			return err
		}

		if !table.Has(email) {
			return domainerrors.ErrUserNotFound
		}
		table.Remove(email)

		return store.Save(ctx, table)
	})
	if err != nil {
		srv.logFailure(ctx, "Account deletion failed", email, err)

		return errors.Wrap(err, "failed to delete account")
	}

	srv.publish(ctx, service.AccountDeleted, email, nil)

	return nil
}

type preparedPatch struct {
	fields       map[string]any
	passwordHash string
}

// preparePatch checks the reserved keys of an update and hashes a new password.
func (srv *accountService) preparePatch(email string, patch map[string]any) (*preparedPatch, error) {
	prepared := &preparedPatch{fields: make(map[string]any, len(patch))}

	for key, value := range patch {
		switch key {
		case entity.FieldEmail:
			if value != email {
				return nil, domainerrors.ErrInvalidPatch.WithDetails("email cannot be changed")
			}
		case entity.FieldPasswordHash:
			return nil, domainerrors.ErrInvalidPatch.WithDetails("password_hash cannot be set directly")
		case entity.FieldPassword:
			password, ok := value.(string)
			if !ok || password == "" {
				return nil, domainerrors.ErrInvalidPatch.WithDetails("password must be a non-empty string")
			}
			hash, err := srv.hasher.Hash(password)
			if err != nil {
				return nil, err
			}
			prepared.passwordHash = hash
		default:
			prepared.fields[key] = value
		}
	}

	return prepared, nil
}

// publish announces a committed change. Failures are logged and never
// reported to the caller, the change is already saved.
func (srv *accountService) publish(ctx context.Context, eventType service.AccountEventType, email string, fields []string) {
	event := &service.AccountEvent{
		EventID:    uuid.New().String(),
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		Email:      email,
		Fields:     fields,
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishAccountEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account event",
			slog.String("type", string(eventType)),
			slog.String("email", email),
			slog.Any("error", err),
		)
	}
}

func (srv *accountService) logFailure(ctx context.Context, msg, email string, err error) {
	kind := domainerrors.KindOf(err)
	level := slog.LevelInfo
	if kind == domainerrors.KindStorage || kind == domainerrors.KindUnknown {
		level = slog.LevelError
	}

	srv.log(ctx).Log(ctx, level, msg,
		slog.String("email", email),
		slog.String("kind", kind.String()),
		slog.Any("error", err),
	)
}

// isMissing reports an absent age: nil or an empty string. Zero is a valid age.
func isMissing(value any) bool {
	if value == nil {
		return true
	}
	text, ok := value.(string)

	return ok && text == ""
}

func patchKeys(patch map[string]any) []string {
	keys := make([]string, 0, len(patch))
	for key := range patch {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys
}
