// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userStore implements repository.UserStore with one row per user record.
type userStore struct {
	db *gorm.DB
}

// NewUserStore is the constructor for userStore.
func NewUserStore(db *gorm.DB) repository.UserStore {
	return &userStore{db: db}
}

// Migrate creates the accounts table when it does not exist yet.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.AccountModel{}); err != nil {
		return domainerrors.NewStorageError(err, "migrate accounts table")
	}

	return nil
}

// Load implements repository.UserStore. An empty accounts table is a valid empty user table.
func (s *userStore) Load(ctx context.Context) (entity.Table, error) {
	var rows []*model.AccountModel
	if err := s.db.WithContext(ctx).Order("email").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewStorageError(err, "load accounts")
	}

	table := make(entity.Table, len(rows))
	for _, row := range rows {
		user, err := toUserDomain(row)
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "parse accounts")
		}
		table.Put(user)
	}

	return table, nil
}

// Save implements repository.UserStore. Rows missing from the table are
// deleted and the rest are upserted in one transaction.
func (s *userStore) Save(ctx context.Context, table entity.Table) error {
	rows := make([]*model.AccountModel, 0, len(table))
	emails := make([]string, 0, len(table))
	for _, user := range table {
		if user == nil {
			continue
		}
		row, err := toAccountModel(user)
		if err != nil {
			return domainerrors.NewStorageError(err, "encode accounts")
		}
		rows = append(rows, row)
		emails = append(emails, row.Email)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prune := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if len(emails) > 0 {
			prune = prune.Where("email NOT IN ?", emails)
		}
		if err := prune.Delete(&model.AccountModel{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			UpdateAll: true,
		}).Create(&rows).Error
	})
	if err != nil {
		return domainerrors.NewStorageError(err, "save accounts")
	}

	return nil
}
