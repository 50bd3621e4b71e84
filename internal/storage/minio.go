package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/smallbiznis/hotelproducts/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const bucketCheckTimeout = 10 * time.Second

var (
	ErrMissingEndpoint = errors.New("minio endpoint is required")
	ErrMissingBucket   = errors.New("minio bucket is required")
	ErrBucketNotFound  = errors.New("minio bucket does not exist")
)

var Module = fx.Module("storage.minio",
	fx.Provide(NewClient),
	fx.Invoke(registerBucketCheck),
)

// NewClient builds a MinIO client from the MINIO_* settings.
func NewClient(cfg config.Config) (*minio.Client, error) {
	if err := validate(cfg.MinIO); err != nil {
		return nil, err
	}
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return client, nil
}

func validate(cfg config.MinIOConfig) error {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return ErrMissingEndpoint
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return ErrMissingBucket
	}
	return nil
}

// EnsureBucket checks the bucket and creates it when create is set.
func EnsureBucket(ctx context.Context, client *minio.Client, bucket string, create bool) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if !create {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

// PutJSON uploads a JSON document under key.
func PutJSON(ctx context.Context, client *minio.Client, bucket, key string, body []byte) error {
	_, err := client.PutObject(ctx, bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

func registerBucketCheck(lc fx.Lifecycle, client *minio.Client, cfg config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
			defer cancel()
			if err := EnsureBucket(ctx, client, cfg.MinIO.Bucket, false); err != nil {
				return err
			}
			log.Info("minio bucket ready",
				zap.String("endpoint", cfg.MinIO.Endpoint),
				zap.String("bucket", cfg.MinIO.Bucket),
			)
			return nil
		},
	})
}
