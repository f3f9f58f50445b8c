package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: every other value has its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, ModeHTTP, conf.Mode)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, DriverMemory, conf.Storage.Driver)
		assert.Equal(t, "localhost:6379", conf.Storage.Redis.GetRedisAddr())
		assert.Equal(t, "tictactoe_save", conf.Game.SaveKey)
		assert.Equal(t, 800*time.Millisecond, conf.Game.SaveDelay)
		assert.Equal(t, "2006/1/2 15:04:05", conf.Game.TimestampLayout)
	})

	t.Run("Reads nested values", func(t *testing.T) {
		path := writeConfig(t, `
mode: console
storage:
  driver: redis
  redis:
    host: cache
    port: "6380"
    db: 2
game:
  save-key: slot
  save-delay: 50ms
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, ModeConsole, conf.Mode)
		assert.Equal(t, DriverRedis, conf.Storage.Driver)
		assert.Equal(t, "cache:6380", conf.Storage.Redis.GetRedisAddr())
		assert.Equal(t, 2, conf.Storage.Redis.DB)
		assert.Equal(t, "slot", conf.Game.SaveKey)
		assert.Equal(t, 50*time.Millisecond, conf.Game.SaveDelay)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
	})
}
