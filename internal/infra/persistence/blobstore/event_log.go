package blobstore

import (
	"context"
	"encoding/json"
	"path"

	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/errors"

	"gocloud.dev/blob"
)

// eventLog writes one object per event under prefix/<yyyy-mm-dd>/<event_id>.json.
type eventLog struct {
	bucket *blob.Bucket
	prefix string
}

// NewEventLog creates an event log on bucket. The bucket is owned by the caller.
func NewEventLog(bucket *blob.Bucket, prefix string) repository.EventLog {
	return &eventLog{
		bucket: bucket,
		prefix: prefix,
	}
}

func (l *eventLog) Append(ctx context.Context, event *service.AccountEvent) error {
	if event == nil || event.EventID == "" {
		return errors.New("event id is required")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	key := l.keyFor(event)
	if err := l.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return domainerrors.NewStorageError(err, "write "+key)
	}

	return nil
}

func (l *eventLog) keyFor(event *service.AccountEvent) string {
	day := event.OccurredAt.UTC().Format("2006-01-02")

	return l.prefix + path.Join(day, event.EventID+".json")
}
