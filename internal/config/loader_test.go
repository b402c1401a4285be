package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempConfig(t, `
database:
  host: localhost
  user: planner
  database: quickcommerce
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 10, cfg.Planner.MaxTables)
	assert.Equal(t, 1000, cfg.Planner.MaxResults)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.True(t, cfg.Cache.Enabled)
	assert.False(t, cfg.LLM.Enabled)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("PLANNER_DB_PASSWORD", "s3cret")

	path := writeTempConfig(t, `
database:
  host: db.internal
  password: ${PLANNER_DB_PASSWORD}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoad_UnknownEnvVarKept(t *testing.T) {
	path := writeTempConfig(t, `
database:
  password: ${DEFINITELY_NOT_SET_VAR_42}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${DEFINITELY_NOT_SET_VAR_42}", cfg.Database.Password)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/planner.yaml")
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()

	cfg.ApplyOverrides("debug", "text", 5, 100, true)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 5, cfg.Planner.MaxTables)
	assert.Equal(t, 100, cfg.Planner.MaxResults)
	assert.False(t, cfg.Cache.Enabled)

	// Zero values must not clobber existing settings
	cfg.ApplyOverrides("", "", 0, 0, false)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.Planner.MaxTables)
	assert.False(t, cfg.Cache.Enabled)
}
