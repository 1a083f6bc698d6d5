// internal/adapters/storage/s3.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/ammerola/warehouse-be/internal/core/ports"
	"github.com/ammerola/warehouse-be/internal/pkg/config"
)

// S3Storage keeps item photos in a bucket. MinIO works through
// S3Endpoint with path style addressing.
type S3Storage struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
	baseURL  string
	logger   *slog.Logger
}

var _ ports.ObjectStorage = (*S3Storage)(nil)

// NewS3Storage builds a client for cfg.S3Bucket, creating the bucket when
// it does not exist yet
func NewS3Storage(ctx context.Context, cfg config.AWSConfig, logger *slog.Logger) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	s := &S3Storage{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3Bucket,
		region:   cfg.Region,
		baseURL:  strings.TrimRight(cfg.S3PublicURL, "/"),
		logger:   logger.With(slog.String("component", "s3"), slog.String("bucket", cfg.S3Bucket)),
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("photo bucket ready", slog.String("region", cfg.Region))
	return s, nil
}

func (s *S3Storage) ensureBucket(ctx context.Context) error {
	err := s.Ping(ctx)
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to reach bucket %s: %w", s.bucket, err)
	}

	in := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	// us-east-1 rejects an explicit location constraint
	if s.region != "" && s.region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, in); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("photo bucket created")
	return nil
}

// Upload stores body under key and returns its public URL
func (s *S3Storage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = contentTypeFor(key)
	}

	start := time.Now()
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"uploaded-at": start.UTC().Format(time.RFC3339),
			"upload-id":   uuid.NewString(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	location := out.Location
	if s.baseURL != "" {
		location = s.baseURL + "/" + escapeKey(key)
	}
	s.logger.InfoContext(ctx, "photo uploaded",
		slog.String("key", key),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return location, nil
}

// Delete removes the object at key. S3 treats a missing key as success.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.logger.InfoContext(ctx, "photo deleted", slog.String("key", key))
	return nil
}

// Ping issues HeadBucket
func (s *S3Storage) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// escapeKey escapes each path segment of key
func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return strings.Join(parts, "/")
}
