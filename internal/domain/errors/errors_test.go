package errors

import (
	"net/http"
	"testing"

	"accounts/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "plain error", err: errors.New("boom"), want: KindUnknown},
		{name: "duplicate email", err: ErrUserAlreadyExists, want: KindConflict},
		{name: "missing record", err: errors.WithStack(ErrUserNotFound), want: KindNotFound},
		{name: "bad credentials", err: errors.Wrap(ErrUnauthorized, "update"), want: KindUnauthorized},
		{name: "invalid patch with details", err: ErrInvalidPatch.WithDetails("email is immutable"), want: KindBadRequest},
		{name: "storage failure", err: errors.Wrap(NewStorageError(errors.New("disk full"), "write users.json"), "register"), want: KindStorage},
		{name: "hashing failure is not a storage failure", err: ErrPasswordHashFailed.WrapMessage("bcrypt: cost out of range"), want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestStorageError_MatchesErrStorage(t *testing.T) {
	err := NewStorageError(errors.New("connection refused"), "begin accounts transaction")

	assert.True(t, errors.Is(err, ErrStorage))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "STORAGE_ERROR", err.ErrorCode())
	assert.Equal(t, "begin accounts transaction", err.Details())
	assert.Contains(t, err.Error(), "connection refused")
}

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("age must be a string or a number")

	assert.True(t, errors.Is(detailed, ErrValidationFailed))
	assert.False(t, errors.Is(detailed, ErrInvalidPatch))
	assert.Equal(t, "age must be a string or a number", detailed.Details())
}
