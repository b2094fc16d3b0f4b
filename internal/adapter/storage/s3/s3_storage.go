package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Storage holds product photos in a MinIO (S3-compatible) bucket.
type Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// Config holds the MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewStorage creates the MinIO client and ensures the bucket exists.
func NewStorage(ctx context.Context, cfg Config, log *logger.Logger) (*Storage, error) {
	log.Info("Initializing S3 storage",
		zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket), zap.Bool("use_ssl", cfg.UseSSL))

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errBucketExists := client.BucketExists(ctx, cfg.Bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", cfg.Bucket, err, errBucketExists)
		}
		log.Info("S3 bucket already exists", zap.String("bucket", cfg.Bucket))
	}

	return &Storage{
		client: client,
		bucket: cfg.Bucket,
		logger: log.Named("S3Storage"),
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *Storage) Upload(ctx context.Context, objectName string, data io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objectName, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("bucket", s.bucket), zap.String("key", objectName), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectName, s.bucket, err)
	}

	s.logger.Info("File uploaded",
		zap.String("bucket", info.Bucket), zap.String("key", info.Key), zap.Int64("size", info.Size))

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectName), nil
}
