package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapEnv(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func Test_parseEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeTempFile(t, dir, "app.env", `
# local overrides
GOPHBLOG_DATABASE_DSN=postgres://file
GOPHBLOG_SESSION_VALIDITY=30m
GOPHBLOG_COMMENT_IMAGE_QUALITY=40
`)

	t.Run("file values applied", func(t *testing.T) {
		cfg := &Config{}
		parseEnv(cfg, []string{"-env", envFile}, noEnv)

		assert.Equal(t, "postgres://file", cfg.DatabaseDSN)
		assert.Equal(t, 30*time.Minute, cfg.SessionValidityDuration)
		assert.Equal(t, 40, cfg.CommentImageQuality)
	})

	t.Run("process environment wins over file", func(t *testing.T) {
		cfg := &Config{}
		parseEnv(cfg, []string{"-env", envFile}, mapEnv(map[string]string{
			"GOPHBLOG_DATABASE_DSN": "postgres://env",
			"GOPHBLOG_SECRET_KEY":   "k",
		}))

		assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
		assert.Equal(t, "k", cfg.SecretKey)
		assert.Equal(t, 40, cfg.CommentImageQuality)
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		cfg := &Config{LogLevel: "info"}
		parseEnv(cfg, nil, mapEnv(map[string]string{"GOPHBLOG_LOG_LEVEL": ""}))
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("explicit missing file panics", func(t *testing.T) {
		require.Panics(t, func() {
			parseEnv(&Config{}, []string{"-env", filepath.Join(dir, "missing.env")}, noEnv)
		})
	})

	t.Run("malformed number panics", func(t *testing.T) {
		require.Panics(t, func() {
			parseEnv(&Config{}, nil, mapEnv(map[string]string{"GOPHBLOG_PER_PAGE": "many"}))
		})
	})
}
