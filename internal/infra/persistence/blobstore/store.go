// Package blobstore keeps the user table as a single JSON document in a
// gocloud.dev bucket.
package blobstore

import (
	"context"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

const contentType = "application/json"

// userStore implements repository.UserStore on top of one blob object.
type userStore struct {
	bucket *blob.Bucket
	key    string
}

// NewUserStore creates a store reading and writing key in bucket.
// The bucket is owned by the caller.
func NewUserStore(bucket *blob.Bucket, key string) repository.UserStore {
	return &userStore{
		bucket: bucket,
		key:    key,
	}
}

// Load implements repository.UserStore.
func (s *userStore) Load(ctx context.Context) (entity.Table, error) {
	data, err := s.bucket.ReadAll(ctx, s.key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		table := entity.Table{}
		if err := s.Save(ctx, table); err != nil {
			return nil, err
		}

		return table, nil
	}
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "read "+s.key)
	}

	table, err := entity.DecodeTable(data)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "parse "+s.key)
	}

	return table, nil
}

// Save implements repository.UserStore.
// Bucket writers only publish the object on a successful Close, so a failed
// write leaves the previous document in place.
func (s *userStore) Save(ctx context.Context, table entity.Table) error {
	data, err := entity.EncodeTable(table)
	if err != nil {
		return domainerrors.NewStorageError(err, "encode "+s.key)
	}

	if err := s.bucket.WriteAll(ctx, s.key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return domainerrors.NewStorageError(err, "write "+s.key)
	}

	return nil
}
