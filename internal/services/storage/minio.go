package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	minioCreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/phambaophuc/resize-studio/internal/config"
	"github.com/phambaophuc/resize-studio/pkg/utils"
)

type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	ids       utils.IDGenerator
}

func NewMinioStore(cfg config.MinioConfig, ids utils.IDGenerator) (*MinioStore, error) {
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("object storage credentials are not configured")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("object storage bucket is not configured")
	}

	client, err := minio.New(strings.TrimSpace(cfg.Endpoint), &minio.Options{
		Creds:  minioCreds.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}

	return &MinioStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		ids:       ids,
	}, nil
}

func (s *MinioStore) Put(ctx context.Context, data []byte, ext, contentType string) (string, error) {
	key := objectKey(s.ids, ext)
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to object storage: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *MinioStore) objectURL(key string) string {
	return s.publicURL + "/" + s.bucket + "/" + key
}

func (s *MinioStore) HealthCheck(ctx context.Context) map[string]string {
	status := make(map[string]string)

	exists, err := s.client.BucketExists(ctx, s.bucket)
	switch {
	case err != nil:
		status["minio"] = "unhealthy: " + err.Error()
	case !exists:
		status["minio"] = "unhealthy: bucket " + s.bucket + " missing"
	default:
		status["minio"] = "healthy"
	}

	return status
}
