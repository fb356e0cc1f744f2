package storage

import (
	"context"
	"fmt"

	"github.com/phambaophuc/resize-studio/internal/config"
	"github.com/phambaophuc/resize-studio/pkg/utils"
)

// Store persists one encoded image under a fresh name and returns the URL or
// relative path it is served under. A failed Put leaves nothing behind.
type Store interface {
	Put(ctx context.Context, data []byte, ext, contentType string) (string, error)
	HealthCheck(ctx context.Context) map[string]string
}

// NewStore builds the backend selected by cfg.Storage.Backend.
func NewStore(cfg *config.Config, ids utils.IDGenerator) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendLocal, "":
		return NewOSLocalStore(cfg.Storage.UploadPath, cfg.Storage.PublicPrefix, ids)
	case config.BackendSupabase:
		return NewSupabaseStore(cfg.Supabase, ids)
	case config.BackendMinio:
		return NewMinioStore(cfg.Minio, ids)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func objectKey(ids utils.IDGenerator, ext string) string {
	return "resized/" + utils.GenerateFilename(ids.NewID(), ext)
}
