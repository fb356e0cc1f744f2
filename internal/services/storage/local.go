package storage

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/phambaophuc/resize-studio/pkg/utils"
	"github.com/spf13/afero"
)

const maxNameAttempts = 3

// LocalStore writes into a flat directory. fs is rooted at that directory.
type LocalStore struct {
	fs           afero.Fs
	ids          utils.IDGenerator
	publicPrefix string
}

func NewLocalStore(fs afero.Fs, publicPrefix string, ids utils.IDGenerator) (*LocalStore, error) {
	s := &LocalStore{
		fs:           fs,
		ids:          ids,
		publicPrefix: publicPrefix,
	}
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewOSLocalStore stores files under dir on the host filesystem.
func NewOSLocalStore(dir, publicPrefix string, ids utils.IDGenerator) (*LocalStore, error) {
	return NewLocalStore(afero.NewBasePathFs(afero.NewOsFs(), dir), publicPrefix, ids)
}

func (s *LocalStore) Put(ctx context.Context, data []byte, ext, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// The directory may have been removed since startup.
	if err := s.ensureDir(); err != nil {
		return "", err
	}

	name, err := s.freshName(ext)
	if err != nil {
		return "", err
	}

	tmp, err := afero.TempFile(s.fs, "/", ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := s.fs.Rename(tmp.Name(), "/"+name); err != nil {
		s.fs.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}

	return path.Join(s.publicPrefix, name), nil
}

func (s *LocalStore) ensureDir() error {
	if ok, err := afero.DirExists(s.fs, "/"); err == nil && ok {
		return nil
	}
	if err := s.fs.MkdirAll("/", 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

func (s *LocalStore) freshName(ext string) (string, error) {
	for i := 0; i < maxNameAttempts; i++ {
		name := utils.GenerateFilename(s.ids.NewID(), ext)
		exists, err := afero.Exists(s.fs, "/"+name)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", name, err)
		}
		if !exists {
			return name, nil
		}
	}
	return "", fmt.Errorf("no free file name after %d attempts", maxNameAttempts)
}

// FileSystem exposes stored files for static serving.
func (s *LocalStore) FileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir("/")
}

func (s *LocalStore) PublicPrefix() string {
	return s.publicPrefix
}

func (s *LocalStore) HealthCheck(ctx context.Context) map[string]string {
	status := make(map[string]string)

	ok, err := afero.DirExists(s.fs, "/")
	switch {
	case err != nil:
		status["local"] = "unhealthy: " + err.Error()
	case !ok:
		status["local"] = "unhealthy: upload directory missing"
	default:
		status["local"] = "healthy"
	}

	return status
}
