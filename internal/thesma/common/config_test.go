package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "Thesma-MCP", cfg.Server.Name)
	assert.Equal(t, "8200", cfg.Server.Port)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thesma-mcp.toml")
	content := `
[server]
transport = "http"
port = "9100"

[api]
key = "file-key"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Server.Transport)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("THESMA_API_KEY", "env-key")
	t.Setenv("THESMA_API_URL", "https://staging.thesma.dev/")
	t.Setenv("THESMA_MCP_TRANSPORT", "http")
	t.Setenv("THESMA_LOG_LEVEL", "warn")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, "https://staging.thesma.dev", cfg.API.BaseURL, "trailing slash should be trimmed")
	assert.Equal(t, "http", cfg.Server.Transport)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "THESMA_API_KEY not set")
	assert.Contains(t, err.Error(), "portal.thesma.dev")

	cfg.API.Key = "thesma-key"
	assert.NoError(t, cfg.Validate())
}
