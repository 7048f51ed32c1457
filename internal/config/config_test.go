package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Given: a config with only the secrets
		path := writeConfig(t, "jwt-secret-key: secret\nsession-secret: cookie\n")

		// When: it is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: every other field takes its default
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "7000", conf.SocketPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.JWTTTL)
		assert.Equal(t, 5, conf.Match.MaxRounds)
		assert.Equal(t, 30*time.Minute, conf.Sweeper.IdleTimeout)
		assert.Equal(t, time.Minute, conf.Sweeper.Interval)
		assert.False(t, conf.GoogleOAuth.Enabled())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file value and an environment value for the same field
		path := writeConfig(t, "jwt-secret-key: secret\nsession-secret: cookie\nmatch:\n  max-rounds: 3\n")
		t.Setenv("MATCH_MAX_ROUNDS", "7")

		// When: it is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the environment wins
		assert.Equal(t, 7, conf.Match.MaxRounds)
	})

	t.Run("Missing secret", func(t *testing.T) {
		// Given: a config without the jwt secret
		path := writeConfig(t, "session-secret: cookie\n")

		// When: it is loaded
		_, err := Load(path)

		// Then: loading fails
		require.Error(t, err)
	})
}
