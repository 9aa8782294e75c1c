package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore implements ports.ObjectStore on Google Cloud Storage. Uploaded
// objects are served from the bucket's public URL, so the bucket must allow
// public reads.
type GCSStore struct {
	client *storage.Client
}

// NewGCSStore creates a Google Cloud Storage backed object store. If
// credsPath is empty, application default credentials are used.
func NewGCSStore(ctx context.Context, credsPath string) (*GCSStore, error) {
	var client *storage.Client
	var err error
	if credsPath == "" {
		client, err = storage.NewClient(ctx)
	} else {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
	}
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSStore{client: client}, nil
}

// Upload streams r into bucket/key with the provided content type.
func (s *GCSStore) Upload(ctx context.Context, bucket, key, contentType string, r io.Reader) error {
	wc := s.client.Bucket(bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return fmt.Errorf("upload object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	return nil
}

// PublicURL builds the public URL for an uploaded object.
func (s *GCSStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
