package repository

import "context"

// TransactionManager serializes load-mutate-save sequences against a UserStore.
// It does not make a sequence atomic against other processes sharing the same
// storage; the last writer still wins there.
type TransactionManager interface {
	// Execute runs fn while holding the store for exclusive use by this process.
	// The error returned by fn is returned unchanged.
	Execute(ctx context.Context, fn func(ctx context.Context, store UserStore) error) error
}
