package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	mockRepo "accounts/internal/mocks/repository"
	mockService "accounts/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type authorizerFixtures struct {
	store  *mockRepo.MockUserStore
	hasher *mockService.MockPasswordHasher
}

func createTestAuthorizer(t *testing.T) (authorizerFixtures, *credentialAuthorizer) {
	fx := authorizerFixtures{
		store:  mockRepo.NewMockUserStore(t),
		hasher: mockService.NewMockPasswordHasher(t),
	}
	authz, ok := NewCredentialAuthorizer(fx.store, fx.hasher, newDiscardLogger()).(*credentialAuthorizer)
	if !ok {
		t.Fatal("unexpected authorizer type")
	}

	return fx, authz
}

func TestCredentialAuthorizer_Validate(t *testing.T) {
	ctx := context.Background()
	table := entity.Table{
		"a@x.com": {Email: "a@x.com", Age: "30", PasswordHash: "stored-hash"},
	}

	t.Run("matching password", func(t *testing.T) {
		fx, authz := createTestAuthorizer(t)
		fx.store.EXPECT().Load(ctx).Return(table, nil)
		fx.hasher.EXPECT().Check("pw1", "stored-hash").Return(true)

		assert.True(t, authz.Validate(ctx, "a@x.com", "pw1"))
	})

	t.Run("wrong password", func(t *testing.T) {
		fx, authz := createTestAuthorizer(t)
		fx.store.EXPECT().Load(ctx).Return(table, nil)
		fx.hasher.EXPECT().Check("nope", "stored-hash").Return(false)

		assert.False(t, authz.Validate(ctx, "a@x.com", "nope"))
	})

	t.Run("empty password never touches the store", func(t *testing.T) {
		_, authz := createTestAuthorizer(t)

		assert.False(t, authz.Validate(ctx, "a@x.com", ""))
	})

	t.Run("unknown email", func(t *testing.T) {
		fx, authz := createTestAuthorizer(t)
		fx.store.EXPECT().Load(ctx).Return(table, nil)

		assert.False(t, authz.Validate(ctx, "b@x.com", "pw1"))
	})

	t.Run("storage failure is denied", func(t *testing.T) {
		fx, authz := createTestAuthorizer(t)
		fx.store.EXPECT().Load(ctx).
			Return(nil, domainerrors.NewStorageError(errors.New("disk gone"), "load"))

		assert.False(t, authz.Validate(ctx, "a@x.com", "pw1"))
	})
}

func TestCredentialAuthorizer_WithBcrypt(t *testing.T) {
	ctx := context.Background()
	hasher := NewBcryptHasherWithCost(4)
	hash, err := hasher.Hash("pw1")
	if err != nil {
		t.Fatal(err)
	}

	store := mockRepo.NewMockUserStore(t)
	store.EXPECT().Load(ctx).Return(entity.Table{
		"a@x.com": {Email: "a@x.com", PasswordHash: hash},
		"b@x.com": {Email: "b@x.com", PasswordHash: "plaintext-by-mistake"},
	}, nil)

	authz := NewCredentialAuthorizer(store, hasher, newDiscardLogger())

	assert.True(t, authz.Validate(ctx, "a@x.com", "pw1"))
	assert.False(t, authz.Validate(ctx, "a@x.com", "pw2"))
	assert.False(t, authz.Validate(ctx, "b@x.com", "plaintext-by-mistake"))
}
