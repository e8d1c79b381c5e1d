package s3client

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	appConfig "s3publish/config"
)

// MinioBucket talks to S3-compatible servers through minio-go. The endpoint
// comes from API_URL and objects are addressed path-style.
type MinioBucket struct {
	client   *minio.Client
	bucket   string
	endpoint string
}

func NewMinio(cfg *appConfig.Config) (*MinioBucket, error) {
	if cfg.ApiURL == "" {
		return nil, fmt.Errorf("API_URL is required for the %s storage driver", appConfig.DriverMinio)
	}

	endpoint, err := url.Parse(cfg.ApiURL)
	if err != nil || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid API_URL %q", cfg.ApiURL)
	}

	client, err := minio.New(endpoint.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: endpoint.Scheme == "https",
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinioBucket{
		client:   client,
		bucket:   cfg.BucketName,
		endpoint: cfg.ApiURL,
	}, nil
}

func (b *MinioBucket) Put(ctx context.Context, key string, payload []byte, contentType, acl string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if acl != "" {
		opts.UserMetadata = map[string]string{"x-amz-acl": acl}
	}

	_, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(payload), int64(len(payload)), opts)
	if err != nil {
		return fmt.Errorf("failed to upload to %s: %w", b.endpoint, err)
	}
	return nil
}

func (b *MinioBucket) DeleteAll(ctx context.Context) error {
	objectsCh := make(chan minio.ObjectInfo)
	var listErr error

	go func() {
		defer close(objectsCh)
		for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				listErr = obj.Err
				return
			}
			select {
			case objectsCh <- obj:
			case <-ctx.Done():
				return
			}
		}
	}()

	var failed int
	var firstErr error
	for rErr := range b.client.RemoveObjects(ctx, b.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed++
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", rErr.ObjectName, rErr.Err)
		}
	}

	if listErr != nil {
		return fmt.Errorf("failed to list objects: %w", listErr)
	}
	if firstErr != nil {
		return fmt.Errorf("failed to delete %d objects, first %w", failed, firstErr)
	}
	return nil
}

func (b *MinioBucket) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

func (b *MinioBucket) BaseURL() string {
	return pathStyleURL(b.endpoint, b.bucket)
}

func (b *MinioBucket) PublicURL(key string) string {
	return objectURL(b.BaseURL(), key)
}
