package postgres

import (
	"context"
	"fmt"

	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"gorm.io/gorm"
)

// accountsLockKey is the advisory lock id shared by every process writing the accounts table.
const accountsLockKey int64 = 0x61636374

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
// Each Execute holds a transaction-scoped advisory lock, so load-mutate-save
// sequences are serialized across processes, not only within one.
type gormTransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(ctx context.Context, store repository.UserStore) error) error {
	// Begin a new transaction
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return domainerrors.NewStorageError(tx.Error, "begin accounts transaction")
	}

	// Roll back if the callback panics, then re-panic for the caller.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", accountsLockKey).Error; err != nil {
		tx.Rollback()

		return domainerrors.NewStorageError(err, "lock accounts table")
	}

	err := fn(ctx, NewUserStore(tx))
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Keep the original business error reachable.
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return domainerrors.NewStorageError(err, "commit accounts transaction")
	}

	return nil
}
