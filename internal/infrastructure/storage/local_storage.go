package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure LocalImageStore implements ImageStore
var _ ImageStore = (*LocalImageStore)(nil)

// LocalImageStore implements ImageStore on the local filesystem. Files
// are written under a base directory and referenced by a public URL
// prefix, e.g. "/uploads/profile.png".
type LocalImageStore struct {
	baseDir   string
	publicURL string
	logger    *zap.Logger
}

// LocalImageStoreOption is a functional option for configuring LocalImageStore
type LocalImageStoreOption func(*LocalImageStore)

// WithLocalLogger sets a custom logger for LocalImageStore
func WithLocalLogger(logger *zap.Logger) LocalImageStoreOption {
	return func(s *LocalImageStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewLocalImageStore creates a local filesystem store rooted at the
// configured directory, creating it if necessary
func NewLocalImageStore(cfg config.StorageConfig, opts ...LocalImageStoreOption) (*LocalImageStore, error) {
	if cfg.LocalDir == "" {
		return nil, errors.New("storage local_dir is required")
	}

	if err := os.MkdirAll(cfg.LocalDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	store := &LocalImageStore{
		baseDir:   cfg.LocalDir,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// Save writes the file to disk and returns its public path
func (s *LocalImageStore) Save(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	name, err := s.sanitize(filename)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("stored file",
		zap.String("file", name),
		zap.Int("size", len(data)))
	return s.publicURL + "/" + name, nil
}

// Remove deletes the file referenced by the given public path
func (s *LocalImageStore) Remove(ctx context.Context, path string) error {
	name, err := s.sanitize(s.stripPrefix(path))
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}

	s.logger.Debug("removed file", zap.String("file", name))
	return nil
}

// Exists reports whether the file referenced by the public path exists
func (s *LocalImageStore) Exists(ctx context.Context, path string) (bool, error) {
	name, err := s.sanitize(s.stripPrefix(path))
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(filepath.Join(s.baseDir, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// BaseDir returns the directory files are stored under
func (s *LocalImageStore) BaseDir() string {
	return s.baseDir
}

// stripPrefix removes the public URL prefix from a stored path
func (s *LocalImageStore) stripPrefix(path string) string {
	if s.publicURL != "" && strings.HasPrefix(path, s.publicURL+"/") {
		return strings.TrimPrefix(path, s.publicURL+"/")
	}
	return path
}

// sanitize rejects names that would escape the base directory
func (s *LocalImageStore) sanitize(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("filename is required")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid filename %q", name)
	}
	return name, nil
}
