// Package persistence selects and wires the user store configured for the service.
package persistence

import (
	"context"
	"log/slog"

	"accounts/config"
	"accounts/internal/domain/constants"
	"accounts/internal/domain/lifecycle"
	"accounts/internal/domain/repository"
	"accounts/internal/errors"
	"accounts/internal/infra/persistence/blobstore"
	"accounts/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Result exposes the store and the transaction manager guarding it.
type Result struct {
	fx.Out

	Store     repository.UserStore
	TxManager repository.TransactionManager
}

// New builds the store for storage.driver and registers its shutdown hooks.
func New(params Params) (Result, error) {
	cfg := params.Config.Storage

	switch cfg.Driver {
	case constants.StorageDriverPostgres:
		return newPostgresStore(params)
	case constants.StorageDriverFile, constants.StorageDriverBlob, "":
		return newBlobStore(params)
	default:
		return Result{}, errors.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func newBlobStore(params Params) (Result, error) {
	cfg := params.Config.Storage

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blobstore.OpenBucket(ctx, cfg)
	if err != nil {
		return Result{}, errors.Wrap(err, "failed to open user table bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("User store ready",
		slog.String("driver", cfg.Driver),
		slog.String("key", cfg.Key),
	)

	store := blobstore.NewUserStore(bucket, cfg.Key)

	return Result{
		Store:     store,
		TxManager: NewMutexTransactionManager(store),
	}, nil
}

func newPostgresStore(params Params) (Result, error) {
	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return Result{}, err
	}

	// Registered after the pool's own hook, so the ping has succeeded by now.
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return postgres.Migrate(ctx, db)
		},
	})

	params.Logger.Info("User store ready", slog.String("driver", constants.StorageDriverPostgres))

	return Result{
		Store:     postgres.NewUserStore(db),
		TxManager: postgres.NewTransactionManager(db),
	}, nil
}
