package impl

import (
	"context"
	"encoding/json"
	"testing"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testEmail = "a@x.com"
	testHash  = "$2a$04$stored"
)

func seededTable() entity.Table {
	return entity.Table{
		testEmail: {Email: testEmail, Age: json.Number("30"), PasswordHash: testHash},
	}
}

func eventOfType(eventType service.AccountEventType) any {
	return mock.MatchedBy(func(event *service.AccountEvent) bool {
		return event.Type == eventType && event.Email == testEmail && event.EventID != ""
	})
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.expectTransaction()
	fx.store.EXPECT().Load(mock.Anything).Return(entity.Table{}, nil)
	fx.hasher.EXPECT().Hash("pw1").Return(testHash, nil)
	fx.store.EXPECT().
		Save(mock.Anything, mock.MatchedBy(func(table entity.Table) bool {
			user, ok := table.Get(testEmail)
			return ok && user.PasswordHash == testHash && user.Age == json.Number("30")
		})).
		Return(nil)
	fx.publisher.EXPECT().PublishAccountEvent(mock.Anything, eventOfType(service.AccountCreated)).Return(nil)

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    testEmail,
		Age:      json.Number("30"),
		Password: "pw1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.Profile{"email": testEmail, "age": json.Number("30")}, out.Profile)
	assert.NotContains(t, out.Profile, entity.FieldPasswordHash)
}

func TestAccountService_Register_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.RegisterInput
	}{
		{name: "no email", input: usecase.RegisterInput{Age: "30", Password: "pw1"}},
		{name: "no password", input: usecase.RegisterInput{Email: testEmail, Age: "30"}},
		{name: "nil age", input: usecase.RegisterInput{Email: testEmail, Password: "pw1"}},
		{name: "empty age", input: usecase.RegisterInput{Email: testEmail, Age: "", Password: "pw1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAccountService(t)

			_, err := fx.service.Register(context.Background(), &tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
			assert.Equal(t, domainerrors.KindBadRequest, domainerrors.KindOf(err))
		})
	}
}

func TestAccountService_Register_ZeroAgeIsValid(t *testing.T) {
	fx := createTestAccountService(t)

	fx.expectTransaction()
	fx.store.EXPECT().Load(mock.Anything).Return(entity.Table{}, nil)
	fx.hasher.EXPECT().Hash("pw1").Return(testHash, nil)
	fx.store.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	fx.publisher.EXPECT().PublishAccountEvent(mock.Anything, mock.Anything).Return(nil)

	out, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    testEmail,
		Age:      json.Number("0"),
		Password: "pw1",
	})
	require.NoError(t, err)
	assert.Equal(t, json.Number("0"), out.Profile["age"])
}

func TestAccountService_Register_Conflict(t *testing.T) {
	fx := createTestAccountService(t)

	fx.expectTransaction()
	fx.store.EXPECT().Load(mock.Anything).Return(seededTable(), nil)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    testEmail,
		Age:      json.Number("31"),
		Password: "pw2",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))
}

func TestAccountService_Register_PasswordTooLong(t *testing.T) {
	fx := createTestAccountService(t)

	fx.expectTransaction()
	fx.store.EXPECT().Load(mock.Anything).Return(entity.Table{}, nil)
	fx.hasher.EXPECT().Hash("long").Return("", domainerrors.ErrPasswordTooLong)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    testEmail,
		Age:      "30",
		Password: "long",
	})
	require.Error(t, err)
	assert.Equal(t, domainerrors.KindBadRequest, domainerrors.KindOf(err))
}

func TestAccountService_Register_StorageErrors(t *testing.T) {
	storageErr := domainerrors.NewStorageError(errors.New("disk full"), "write users.json")

	t.Run("load fails", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.store.EXPECT().Load(mock.Anything).Return(nil, storageErr)

		_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{Email: testEmail, Age: "30", Password: "pw1"})
		require.Error(t, err)
		assert.Equal(t, domainerrors.KindStorage, domainerrors.KindOf(err))
	})

	t.Run("save fails and no event is published", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.store.EXPECT().Load(mock.Anything).Return(entity.Table{}, nil)
		fx.hasher.EXPECT().Hash("pw1").Return(testHash, nil)
		fx.store.EXPECT().Save(mock.Anything, mock.Anything).Return(storageErr)

		_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{Email: testEmail, Age: "30", Password: "pw1"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrStorage))
	})
}

func TestAccountService_Register_PublishFailureIsNotAnError(t *testing.T) {
	fx := createTestAccountService(t)

	fx.expectTransaction()
	fx.store.EXPECT().Load(mock.Anything).Return(entity.Table{}, nil)
	fx.hasher.EXPECT().Hash("pw1").Return(testHash, nil)
	fx.store.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	fx.publisher.EXPECT().PublishAccountEvent(mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{Email: testEmail, Age: "30", Password: "pw1"})
	assert.NoError(t, err)
}

func TestAccountService_GetAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.store.EXPECT().Load(mock.Anything).Return(seededTable(), nil)
		fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "pw1").Return(true)

		out, err := fx.service.GetAccount(ctx, testEmail, "pw1")
		require.NoError(t, err)
		assert.Equal(t, entity.Profile{"email": testEmail, "age": json.Number("30")}, out.Profile)
	})

	t.Run("unknown email is reported before credentials are checked", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.store.EXPECT().Load(mock.Anything).Return(entity.Table{}, nil)

		_, err := fx.service.GetAccount(ctx, testEmail, "wrong")
		require.Error(t, err)
		assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.store.EXPECT().Load(mock.Anything).Return(seededTable(), nil)
		fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "wrong").Return(false)

		_, err := fx.service.GetAccount(ctx, testEmail, "wrong")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
	})
}

func TestAccountService_UpdateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("credentials are checked before existence", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.authorizer.EXPECT().Validate(mock.Anything, "ghost@x.com", "wrong").Return(false)

		_, err := fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
			Email:    "ghost@x.com",
			Password: "wrong",
			Patch:    map[string]any{"age": "31"},
		})
		require.Error(t, err)
		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
	})

	t.Run("not found after valid credentials", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "pw1").Return(true)
		fx.store.EXPECT().Load(mock.Anything).Return(entity.Table{}, nil)

		_, err := fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
			Email:    testEmail,
			Password: "pw1",
			Patch:    map[string]any{"age": "31"},
		})
		require.Error(t, err)
		assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
	})

	t.Run("merges supplied fields only", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "pw1").Return(true)
		table := seededTable()
		table[testEmail].Attributes = map[string]any{"city": "Paris"}
		fx.store.EXPECT().Load(mock.Anything).Return(table, nil)
		fx.store.EXPECT().
			Save(mock.Anything, mock.MatchedBy(func(saved entity.Table) bool {
				user, ok := saved.Get(testEmail)
				return ok && user.PasswordHash == testHash && user.Age == json.Number("30")
			})).
			Return(nil)
		fx.publisher.EXPECT().
			PublishAccountEvent(mock.Anything, mock.MatchedBy(func(event *service.AccountEvent) bool {
				return event.Type == service.AccountUpdated && assert.ObjectsAreEqual([]string{"nickname"}, event.Fields)
			})).
			Return(nil)

		out, err := fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
			Email:    testEmail,
			Password: "pw1",
			Patch:    map[string]any{"nickname": "al"},
		})
		require.NoError(t, err)
		assert.Equal(t, entity.Profile{
			"email":    testEmail,
			"age":      json.Number("30"),
			"city":     "Paris",
			"nickname": "al",
		}, out.Profile)
	})

	t.Run("password in patch is re-hashed", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "pw1").Return(true)
		fx.store.EXPECT().Load(mock.Anything).Return(seededTable(), nil)
		fx.hasher.EXPECT().Hash("pw2").Return("$2a$04$fresh", nil)
		fx.store.EXPECT().
			Save(mock.Anything, mock.MatchedBy(func(saved entity.Table) bool {
				user, ok := saved.Get(testEmail)
				return ok && user.PasswordHash == "$2a$04$fresh" && user.Attributes["password"] == nil
			})).
			Return(nil)
		fx.publisher.EXPECT().PublishAccountEvent(mock.Anything, eventOfType(service.AccountUpdated)).Return(nil)

		out, err := fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
			Email:    testEmail,
			Password: "pw1",
			Patch:    map[string]any{"password": "pw2", "email": testEmail},
		})
		require.NoError(t, err)
		assert.NotContains(t, out.Profile, entity.FieldPassword)
		assert.NotContains(t, out.Profile, entity.FieldPasswordHash)
	})

	t.Run("rejected patches", func(t *testing.T) {
		patches := map[string]map[string]any{
			"email change":      {"email": "b@x.com"},
			"direct hash":       {"password_hash": "x"},
			"empty password":    {"password": ""},
			"non-string secret": {"password": json.Number("12")},
		}

		for name, patch := range patches {
			t.Run(name, func(t *testing.T) {
				fx := createTestAccountService(t)
				fx.expectTransaction()
				fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "pw1").Return(true)
				fx.store.EXPECT().Load(mock.Anything).Return(seededTable(), nil)

				_, err := fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
					Email:    testEmail,
					Password: "pw1",
					Patch:    patch,
				})
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainerrors.ErrInvalidPatch))
				assert.Equal(t, domainerrors.KindBadRequest, domainerrors.KindOf(err))
			})
		}
	})

	t.Run("unreadable body is checked after the credentials", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "wrong").Return(false)

		_, err := fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{Email: testEmail, Password: "wrong"})
		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))

		fx = createTestAccountService(t)
		fx.expectTransaction()
		fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "pw1").Return(true)

		_, err = fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{Email: testEmail, Password: "pw1"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidPatch))
	})
}

func TestAccountService_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("empty password is denied without a lookup", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()

		err := fx.service.DeleteAccount(ctx, testEmail, "")
		require.Error(t, err)
		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
	})

	t.Run("wrong password on unknown email", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.authorizer.EXPECT().Validate(mock.Anything, "ghost@x.com", "wrong").Return(false)

		err := fx.service.DeleteAccount(ctx, "ghost@x.com", "wrong")
		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
	})

	t.Run("not found after valid credentials", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "pw1").Return(true)
		fx.store.EXPECT().Load(mock.Anything).Return(entity.Table{}, nil)

		err := fx.service.DeleteAccount(ctx, testEmail, "pw1")
		assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
	})

	t.Run("success", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "pw1").Return(true)
		fx.store.EXPECT().Load(mock.Anything).Return(seededTable(), nil)
		fx.store.EXPECT().
			Save(mock.Anything, mock.MatchedBy(func(saved entity.Table) bool {
				return !saved.Has(testEmail)
			})).
			Return(nil)
		fx.publisher.EXPECT().PublishAccountEvent(mock.Anything, eventOfType(service.AccountDeleted)).Return(nil)

		assert.NoError(t, fx.service.DeleteAccount(ctx, testEmail, "pw1"))
	})

	t.Run("save failure", func(t *testing.T) {
		fx := createTestAccountService(t)
		fx.expectTransaction()
		fx.authorizer.EXPECT().Validate(mock.Anything, testEmail, "pw1").Return(true)
		fx.store.EXPECT().Load(mock.Anything).Return(seededTable(), nil)
		fx.store.EXPECT().Save(mock.Anything, mock.Anything).
			Return(domainerrors.NewStorageError(errors.New("read-only"), "write users.json"))

		err := fx.service.DeleteAccount(ctx, testEmail, "pw1")
		assert.Equal(t, domainerrors.KindStorage, domainerrors.KindOf(err))
	})
}
