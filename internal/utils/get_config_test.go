package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
APP_PORT: "8080"
DB_DRIVER: sqlite
JWT_SECRET: from-file
JWT_TTL_MINUTES: 30
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "from-env")

	LoadConfig()

	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, "sqlite", GetConfig("DB_DRIVER"))
	assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))
	assert.Equal(t, 30, GetConfigInt("JWT_TTL_MINUTES", 120))
	assert.Equal(t, 15, GetConfigInt("SCAN_IDLE_MINUTES", 15))
	assert.Empty(t, GetConfig("UNKNOWN_KEY"))
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("APP_PORT", "9000")

	LoadConfig()

	assert.Equal(t, "9000", GetConfig("APP_PORT"))
}
