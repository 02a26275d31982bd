package storage

import (
	"testing"

	"github.com/hms/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validS3Config() config.StorageConfig {
	return config.StorageConfig{
		Driver:       "s3",
		Bucket:       "hms-uploads",
		Region:       "us-east-1",
		Endpoint:     "localhost:9000",
		AccessKey:    "test-access",
		SecretKey:    "test-secret",
		PublicURL:    "https://cdn.example.com/uploads",
		UsePathStyle: true,
	}
}

func TestNewS3ImageStore(t *testing.T) {
	t.Run("creates store from valid config", func(t *testing.T) {
		store, err := NewS3ImageStore(validS3Config())

		require.NoError(t, err)
		assert.NotNil(t, store)
		assert.Equal(t, "hms-uploads", store.GetBucket())
	})

	t.Run("requires bucket", func(t *testing.T) {
		cfg := validS3Config()
		cfg.Bucket = ""

		_, err := NewS3ImageStore(cfg)
		assert.Error(t, err)
	})

	t.Run("requires access key", func(t *testing.T) {
		cfg := validS3Config()
		cfg.AccessKey = ""

		_, err := NewS3ImageStore(cfg)
		assert.Error(t, err)
	})

	t.Run("requires secret key", func(t *testing.T) {
		cfg := validS3Config()
		cfg.SecretKey = ""

		_, err := NewS3ImageStore(cfg)
		assert.Error(t, err)
	})

	t.Run("defaults region and endpoint", func(t *testing.T) {
		cfg := validS3Config()
		cfg.Region = ""
		cfg.Endpoint = ""

		store, err := NewS3ImageStore(cfg)
		require.NoError(t, err)
		assert.NotNil(t, store)
	})
}

func TestS3ImageStore_StripPrefix(t *testing.T) {
	store, err := NewS3ImageStore(validS3Config())
	require.NoError(t, err)

	assert.Equal(t, "profile.png", store.stripPrefix("https://cdn.example.com/uploads/profile.png"))
	assert.Equal(t, "profile.png", store.stripPrefix("profile.png"))
}
