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

	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvAPIKey, "")

	path := writeConfig(t, `
base_url = "https://sekha.example.com"
api_key  = "sk-sekha-file-key"
timeout  = "10s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://sekha.example.com", cfg.BaseURL)
	assert.Equal(t, "sk-sekha-file-key", cfg.APIKey)
	assert.Equal(t, "10s", cfg.Timeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
base_url = "https://file.example.com"
api_key  = "file-key"
`)

	t.Setenv(EnvBaseURL, "https://env.example.com")
	t.Setenv(EnvAPIKey, "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvAPIKey, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.APIKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, `base_url = `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestClientConfig(t *testing.T) {
	cfg := &Config{
		BaseURL: "https://sekha.example.com",
		APIKey:  "key",
		Timeout: "45s",
	}

	clientCfg, err := cfg.ClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://sekha.example.com", clientCfg.BaseURL)
	assert.Equal(t, "key", clientCfg.APIKey)
	assert.Equal(t, 45*time.Second, clientCfg.Timeout)
}

func TestClientConfig_BadTimeout(t *testing.T) {
	cfg := &Config{BaseURL: "https://sekha.example.com", Timeout: "soon"}

	_, err := cfg.ClientConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}
