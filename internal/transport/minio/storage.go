// Package minio wraps S3-compatible object storage: per-object metadata tags
// and time-limited presigned retrieval links.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kailas-cloud/photodex/internal/domain"
	"github.com/kailas-cloud/photodex/internal/domain/label"
)

// TagMetadataKey is the user-metadata field carrying operator-supplied labels
// as a comma-separated string.
const TagMetadataKey = "Customlabels"

// Config holds connection parameters for the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// Storage implements the object store veneer over a MinIO/S3 client.
type Storage struct {
	client *minio.Client
	region string
}

// New creates an object storage client.
func New(cfg Config) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &Storage{client: client, region: cfg.Region}, nil
}

// EnsureBucket makes sure the bucket exists before use.
func (s *Storage) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("make bucket %s: %w", bucket, err)
		}
	}
	return nil
}

// FetchTags returns the user metadata attached to an object. A missing object
// is an error; an object without metadata yields an empty map.
func (s *Storage) FetchTags(ctx context.Context, bucket, objectKey string) (map[string]string, error) {
	info, err := s.client.StatObject(ctx, bucket, objectKey, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("stat object %s/%s: %w: %w", bucket, objectKey, domain.ErrObjectStoreError, err)
	}
	if info.UserMetadata == nil {
		return map[string]string{}, nil
	}
	return info.UserMetadata, nil
}

// FetchLabelTags returns the operator-supplied labels attached to an object,
// split from the comma-separated metadata field. An object without the field
// yields nil.
func (s *Storage) FetchLabelTags(ctx context.Context, bucket, objectKey string) ([]string, error) {
	meta, err := s.FetchTags(ctx, bucket, objectKey)
	if err != nil {
		return nil, err
	}
	return label.SplitCSV(meta[TagMetadataKey]), nil
}

// PresignURL returns a time-limited GET link for the object.
func (s *Storage) PresignURL(ctx context.Context, bucket, objectKey string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, objectKey, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w: %w", bucket, objectKey, domain.ErrObjectStoreError, err)
	}
	return u.String(), nil
}

// HealthCheck probes object store reachability.
func (s *Storage) HealthCheck(ctx context.Context) error {
	if _, err := s.client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("list buckets: %w", err)
	}
	return nil
}
