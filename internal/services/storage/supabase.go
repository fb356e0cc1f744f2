package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phambaophuc/resize-studio/internal/config"
	"github.com/phambaophuc/resize-studio/pkg/utils"
	storage_go "github.com/supabase-community/storage-go"
)

type SupabaseStore struct {
	sbClient *storage_go.Client
	bucket   string
	ids      utils.IDGenerator
}

func NewSupabaseStore(cfg config.SupabaseConfig, ids utils.IDGenerator) (*SupabaseStore, error) {
	if cfg.URL == "" || cfg.BUCKET == "" {
		return nil, fmt.Errorf("supabase storage requires SUPABASE_URL and SUPABASE_BUCKET")
	}

	sbClient := storage_go.NewClient(cfg.URL+"/storage/v1", cfg.KEY, nil)

	return &SupabaseStore{
		sbClient: sbClient,
		bucket:   cfg.BUCKET,
		ids:      ids,
	}, nil
}

// Put uploads file to Supabase Storage
func (s *SupabaseStore) Put(ctx context.Context, data []byte, ext, contentType string) (string, error) {
	key := objectKey(s.ids, ext)

	_, err := s.sbClient.UploadFile(s.bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := s.sbClient.GetPublicUrl(s.bucket, key)
	return publicURL.SignedURL, nil
}

func (s *SupabaseStore) HealthCheck(ctx context.Context) map[string]string {
	status := make(map[string]string)

	_, err := s.sbClient.ListFiles(s.bucket, "", storage_go.FileSearchOptions{})
	if err != nil {
		status["supabase"] = "unhealthy: " + err.Error()
	} else {
		status["supabase"] = "healthy"
	}

	return status
}
