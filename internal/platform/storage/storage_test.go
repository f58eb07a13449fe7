package storage_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/SscSPs/class_fund_app/internal/platform/config"
	"github.com/SscSPs/class_fund_app/internal/platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenKeyValueStore(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("memory", func(t *testing.T) {
		kv, err := storage.OpenKeyValueStore(ctx, &config.Config{StoreDriver: config.StoreDriverMemory}, logger)
		require.NoError(t, err)
		defer kv.Close()

		require.NoError(t, kv.Set(ctx, "boxes", []byte("[]")))
		_, found, err := kv.Get(ctx, "boxes")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("badger", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.StoreDriverBadger, BadgerPath: filepath.Join(t.TempDir(), "boxes")}
		kv, err := storage.OpenKeyValueStore(ctx, cfg, logger)
		require.NoError(t, err)
		assert.NoError(t, kv.Close())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := storage.OpenKeyValueStore(ctx, &config.Config{StoreDriver: "floppy"}, logger)
		assert.Error(t, err)
	})
}
