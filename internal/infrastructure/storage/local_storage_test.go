package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hms/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) *LocalImageStore {
	store, err := NewLocalImageStore(config.StorageConfig{
		Driver:    "local",
		LocalDir:  t.TempDir(),
		PublicURL: "/uploads",
	})
	require.NoError(t, err)
	return store
}

func TestNewLocalImageStore(t *testing.T) {
	t.Run("creates the base directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "uploads")

		_, err := NewLocalImageStore(config.StorageConfig{LocalDir: dir, PublicURL: "/uploads"})
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("requires a directory", func(t *testing.T) {
		_, err := NewLocalImageStore(config.StorageConfig{})
		assert.Error(t, err)
	})
}

func TestLocalImageStore_SaveAndRemove(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	path, err := store.Save(ctx, "profile.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profile.png", path)

	data, err := os.ReadFile(filepath.Join(store.BaseDir(), "profile.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	exists, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Remove(ctx, path))

	exists, err = store.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalImageStore_RemoveMissingFile(t *testing.T) {
	store := newTestLocalStore(t)

	err := store.Remove(context.Background(), "/uploads/missing.png")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalImageStore_RemoveAcceptsBareFilename(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "scan.pdf", []byte("pdf"), "application/pdf")
	require.NoError(t, err)

	assert.NoError(t, store.Remove(ctx, "scan.pdf"))
}

func TestLocalImageStore_RejectsPathTraversal(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	cases := []string{"", "../escape.png", "a/b.png", `a\b.png`, "..", "uploads/../x"}
	for _, name := range cases {
		_, err := store.Save(ctx, name, []byte("x"), "image/png")
		assert.Error(t, err, "Save(%q) should be rejected", name)

		err = store.Remove(ctx, name)
		assert.Error(t, err, "Remove(%q) should be rejected", name)
	}
}

func TestNewImageStore(t *testing.T) {
	t.Run("selects local driver", func(t *testing.T) {
		store, err := NewImageStore(config.StorageConfig{
			Driver:    "local",
			LocalDir:  t.TempDir(),
			PublicURL: "/uploads",
		}, nil)
		require.NoError(t, err)

		_, ok := store.(*LocalImageStore)
		assert.True(t, ok)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		_, err := NewImageStore(config.StorageConfig{Driver: "ftp"}, nil)
		assert.Error(t, err)
	})
}
