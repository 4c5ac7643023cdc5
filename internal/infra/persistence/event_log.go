package persistence

import (
	"context"
	"log/slog"

	"accounts/internal/domain/constants"
	"accounts/internal/domain/lifecycle"
	"accounts/internal/domain/repository"
	"accounts/internal/errors"
	"accounts/internal/infra/persistence/blobstore"

	"go.uber.org/fx"
)

// NewEventLog opens the events bucket for the event worker.
func NewEventLog(params Params) (repository.EventLog, error) {
	cfg := params.Config.Events
	if cfg.Driver == constants.StorageDriverPostgres {
		return nil, errors.New("events.driver must be file or blob")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blobstore.OpenBucket(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open events bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Event log ready",
		slog.String("driver", cfg.Driver),
		slog.String("prefix", cfg.Key),
	)

	return blobstore.NewEventLog(bucket, cfg.Key), nil
}
