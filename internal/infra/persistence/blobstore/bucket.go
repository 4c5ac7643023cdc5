package blobstore

import (
	"context"

	"accounts/config"
	"accounts/internal/domain/constants"
	"accounts/internal/errors"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	// URL openers for the blob driver.
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// OpenBucket opens the bucket described by the storage config.
// The file driver uses a local directory, created when missing. The blob
// driver accepts any registered URL scheme (file, mem, gs, s3).
func OpenBucket(ctx context.Context, cfg config.StorageConfig) (*blob.Bucket, error) {
	switch cfg.Driver {
	case constants.StorageDriverFile, "":
		// Temp files live next to the table so the final rename stays on one filesystem.
		bucket, err := fileblob.OpenBucket(cfg.Dir, &fileblob.Options{
			CreateDir: true,
			NoTempDir: true,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "open data directory %q", cfg.Dir)
		}

		return bucket, nil
	case constants.StorageDriverBlob:
		if cfg.URL == "" {
			return nil, errors.New("storage.url is required for the blob driver")
		}
		bucket, err := blob.OpenBucket(ctx, cfg.URL)
		if err != nil {
			return nil, errors.Wrapf(err, "open bucket %q", cfg.URL)
		}

		return bucket, nil
	default:
		return nil, errors.Errorf("storage driver %q has no bucket", cfg.Driver)
	}
}
