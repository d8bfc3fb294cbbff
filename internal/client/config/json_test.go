package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	b, err := json.Marshal(data)
	require.NoError(t, err)
	return writeTempFile(t, dir, name, string(b))
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"database_dsn":              "postgres://db/blog",
		"session_validity_duration": "90m",
		"per_page":                  12,
		"allowed_email_domain":      "example.com",
	})

	t.Run("loads with -config", func(t *testing.T) {
		cfg := &Config{LogLevel: "warn"}
		parseJson(cfg, []string{"-config", path})

		assert.Equal(t, "postgres://db/blog", cfg.DatabaseDSN)
		assert.Equal(t, 90*time.Minute, cfg.SessionValidityDuration)
		assert.Equal(t, 12, cfg.PerPage)
		assert.Equal(t, "example.com", cfg.AllowedEmailDomain)
		assert.Equal(t, "warn", cfg.LogLevel, "absent fields are kept")
	})

	t.Run("loads with -c=", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-c=" + path})
		assert.Equal(t, 12, cfg.PerPage)
	})

	t.Run("no config flag leaves cfg untouched", func(t *testing.T) {
		cfg := &Config{PerPage: 42, DatabaseDSN: "defaults"}
		parseJson(cfg, []string{"-p", "3"})

		assert.Equal(t, 42, cfg.PerPage)
		assert.Equal(t, "defaults", cfg.DatabaseDSN)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := writeTempFile(t, dir, "bad.json", `{ this is not valid json`)
		require.Panics(t, func() { parseJson(&Config{}, []string{"-config", bad}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-config", filepath.Join(dir, "nope.json")}) })
	})
}
