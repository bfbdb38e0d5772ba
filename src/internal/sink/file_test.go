// FILE: arsenic/src/internal/sink/file_test.go
package sink

import (
	"os"
	"path/filepath"
	"testing"

	"arsenic/src/internal/config"
	"arsenic/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink(t *testing.T) {
	logger := newTestLogger()

	t.Run("AppendsTerminatedLines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "app.log")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0644))

		fs, err := NewFileSink(&config.FileOptions{Path: path}, logger)
		require.NoError(t, err)
		require.NoError(t, fs.Start(t.Context()))

		fs.Emit(newRecord(core.LevelInfo, "one"))
		fs.Emit(newRecord(core.LevelError, "two", "db"))
		require.NoError(t, fs.Sync())
		fs.Stop()

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "existing\n[info] one\n\r[db] [error] two\n\r", string(content))
	})

	t.Run("NeverColorized", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plain.log")
		fs, err := NewFileSink(&config.FileOptions{Path: path}, logger)
		require.NoError(t, err)

		fs.Emit(newRecord(core.LevelFatal, "dead"))
		fs.Stop()

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "\x1b[")
	})

	t.Run("WriteAfterStopFails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "closed.log")
		fs, err := NewFileSink(&config.FileOptions{Path: path}, logger)
		require.NoError(t, err)
		fs.Stop()
		fs.Stop()

		fs.Emit(newRecord(core.LevelInfo, "late"))
		assert.Equal(t, uint64(1), fs.GetStats().TotalFailed)
		assert.NoError(t, fs.Sync())
	})

	t.Run("Rotation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rotated.log")
		fs, err := NewFileSink(&config.FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 2}, logger)
		require.NoError(t, err)
		assert.Nil(t, fs.file)

		fs.Emit(newRecord(core.LevelInfo, "rotating"))
		fs.Stop()

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[info] rotating\n\r", string(content))
	})
}
