package s3client

import (
	"context"
	"fmt"

	appConfig "s3publish/config"
	"s3publish/internal/transfer"
)

// Bucket is a transfer.BucketHandle that can also list keys.
type Bucket interface {
	transfer.BucketHandle
	List(ctx context.Context, prefix string) ([]string, error)
}

var (
	_ Bucket = (*Client)(nil)
	_ Bucket = (*MinioBucket)(nil)
)

// Open picks the backend named by cfg.StorageDriver.
func Open(cfg *appConfig.Config) (Bucket, error) {
	switch cfg.StorageDriver {
	case "", appConfig.DriverS3:
		client, err := New(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	case appConfig.DriverMinio:
		bucket, err := NewMinio(cfg)
		if err != nil {
			return nil, err
		}
		return bucket, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
