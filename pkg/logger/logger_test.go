package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		log, err := New()
		require.NoError(t, err)
		require.NotNil(t, log)
		log.Info("hello", String("key", "value"))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(WithLevel("loud"))
		require.Error(t, err)
	})

	t.Run("file sink creates directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "deckmd.log")

		log, err := New(WithFile(path), WithLevel("debug"))
		require.NoError(t, err)

		log.Debug("written to file")
		require.NoError(t, log.Sync())

		assert.DirExists(t, filepath.Dir(path))
	})
}

func TestWithAndNamed(t *testing.T) {
	log := NewNop()
	child := log.With(String("run_id", "abc")).Named("converter")
	require.NotNil(t, child)
	child.Warn("no-op")
}
