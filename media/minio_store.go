package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage implements Store against a MinIO/S3 bucket. All assets live
// in one bucket; the "uploads/<bucket>/" classifier buckets become object
// key prefixes.
type ObjectStorage struct {
	client *minio.Client
	bucket string
}

// NewObjectStorage connects to the object-storage endpoint and returns a
// Store backed by the given bucket.
func NewObjectStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*ObjectStorage, error) {
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	if i := strings.Index(endpoint, "/"); i != -1 {
		endpoint = endpoint[:i]
	}

	// Higher connection pool limits avoid intermittent 500s when many images
	// load concurrently.
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:    useSSL,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for '%s': %w", endpoint, err)
	}

	log.Printf("media.store: Initialized ObjectStorage at %s (bucket: %s)", endpoint, bucket)
	return &ObjectStorage{client: client, bucket: bucket}, nil
}

func (s *ObjectStorage) EnsureBuckets(ctx context.Context, _ []string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket '%s': %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket '%s': %w", s.bucket, err)
	}
	log.Printf("media.store: Created bucket %s", s.bucket)
	return nil
}

func (s *ObjectStorage) Save(ctx context.Context, bucket, filename string, data io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("uploads/%s/%s", bucket, filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object '%s': %w", key, err)
	}
	// leading slash keeps the "/uploads/" marker visible to PublicURL
	return "/" + key, nil
}

func (s *ObjectStorage) Open(ctx context.Context, urlPath string) (io.ReadCloser, error) {
	key := strings.TrimPrefix(urlPath, "/")
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object '%s': %w", key, err)
	}
	return obj, nil
}

func (s *ObjectStorage) Delete(ctx context.Context, urlPath string) error {
	key := strings.TrimPrefix(urlPath, "/")
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object '%s': %w", key, err)
	}
	return nil
}
