package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/wikitext/internal/fetch"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, fetch.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, "text", cfg.Format)
}

func TestValidateConfig_Rejects(t *testing.T) {
	mutations := map[string]func(*Config){
		"zero timeout":       func(c *Config) { c.Timeout = 0 },
		"negative redirects": func(c *Config) { c.RedirectMaxHops = -1 },
		"negative body cap":  func(c *Config) { c.MaxBodyBytes = -1 },
		"blank user agent":   func(c *Config) { c.UserAgent = "  " },
		"unknown format":     func(c *Config) { c.Format = "rtf" },
	}
	for name, mutate := range mutations {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.Error(t, ValidateConfig(cfg), name)
	}
}

func TestLoadConfigFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wikitext.yaml")
	content := `
http:
  userAgent: "wikitext-yaml/1.0"
  timeout: 5s
  maxRedirects: 0
output:
  format: markdown
  path: out.md
log:
  verbose: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	fc, err := LoadConfigFile(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)
	assert.Equal(t, "wikitext-yaml/1.0", cfg.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.RedirectMaxHops)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Equal(t, "out.md", cfg.OutputPath)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, fetch.DefaultMaxBodyBytes, cfg.MaxBodyBytes)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wikitext.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output":{"format":"json"},"log":{"json":true}}`), 0o600))

	fc, err := LoadConfigFile(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, fetch.DefaultRedirectMaxHops, cfg.RedirectMaxHops)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o600))
	_, err = LoadConfigFile(path)
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvUserAgent, "env-agent")
	t.Setenv(EnvTimeout, "3s")
	t.Setenv(EnvMaxRedirects, "2")
	t.Setenv(EnvMaxBodyBytes, "1024")
	t.Setenv(EnvFormat, "pdf")
	t.Setenv(EnvOutput, "article.pdf")
	t.Setenv(EnvVerbose, "yes")
	t.Setenv(EnvLogJSON, "off")

	cfg := DefaultConfig()
	cfg.LogJSON = true
	ApplyEnvOverrides(&cfg)
	assert.Equal(t, "env-agent", cfg.UserAgent)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.RedirectMaxHops)
	assert.Equal(t, int64(1024), cfg.MaxBodyBytes)
	assert.Equal(t, "pdf", cfg.Format)
	assert.Equal(t, "article.pdf", cfg.OutputPath)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.LogJSON)
}

func TestApplyEnvOverrides_IgnoresInvalidValues(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	t.Setenv(EnvMaxRedirects, "many")

	cfg := DefaultConfig()
	ApplyEnvOverrides(&cfg)
	assert.Equal(t, fetch.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, fetch.DefaultRedirectMaxHops, cfg.RedirectMaxHops)
}
