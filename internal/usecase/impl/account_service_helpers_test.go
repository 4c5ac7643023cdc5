package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"accounts/internal/domain/repository"
	mockRepo "accounts/internal/mocks/repository"
	mockService "accounts/internal/mocks/service"
	"accounts/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service    usecase.AccountUsecase
	txManager  *mockRepo.MockTransactionManager
	store      *mockRepo.MockUserStore
	authorizer *mockService.MockAuthorizer
	hasher     *mockService.MockPasswordHasher
	publisher  *mockService.MockEventPublisher
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	fx := accountServiceFixtures{
		txManager:  mockRepo.NewMockTransactionManager(t),
		store:      mockRepo.NewMockUserStore(t),
		authorizer: mockService.NewMockAuthorizer(t),
		hasher:     mockService.NewMockPasswordHasher(t),
		publisher:  mockService.NewMockEventPublisher(t),
	}

	fx.service = NewAccountService(AccountServiceParams{
		TxManager:  fx.txManager,
		Authorizer: fx.authorizer,
		Hasher:     fx.hasher,
		Publisher:  fx.publisher,
		Logger:     newDiscardLogger(),
	})

	return fx
}

// expectTransaction runs the operation body against the mocked store.
func (fx accountServiceFixtures) expectTransaction() {
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(context.Context, repository.UserStore) error) error {
			return fn(ctx, fx.store)
		}).
		Once()
}
