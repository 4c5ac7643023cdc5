package persistence

import (
	"context"
	"sync"

	"accounts/internal/domain/repository"
)

// mutexTransactionManager serializes every operation of this process against
// one store. Other processes sharing the document are not coordinated.
type mutexTransactionManager struct {
	mu    sync.Mutex
	store repository.UserStore
}

// NewMutexTransactionManager wraps store with a process-wide lock.
func NewMutexTransactionManager(store repository.UserStore) repository.TransactionManager {
	return &mutexTransactionManager{store: store}
}

// Execute implements repository.TransactionManager.
func (m *mutexTransactionManager) Execute(ctx context.Context, fn func(ctx context.Context, store repository.UserStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(ctx, m.store)
}
