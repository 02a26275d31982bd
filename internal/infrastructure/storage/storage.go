// Package storage provides image and attachment stores for uploaded files.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/hms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the referenced file does not exist
var ErrNotFound = errors.New("file not found")

// ImageStore persists uploaded files and serves them under a public path.
// Save returns the public path that clients use to reference the file;
// Remove accepts that same path.
type ImageStore interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}

// NewImageStore creates the image store selected by configuration
func NewImageStore(cfg config.StorageConfig, logger *zap.Logger) (ImageStore, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalImageStore(cfg, WithLocalLogger(logger))
	case "s3":
		return NewS3ImageStore(cfg, WithS3Logger(logger))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
