package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, time.Duration(0), cfg.Server.WriteTimeout)

	assert.Equal(t, "https://ai.gateway.lovable.dev/v1", cfg.Gateway.BaseURL)
	assert.Equal(t, "google/gemini-2.5-pro", cfg.Gateway.Model)
	assert.Empty(t, cfg.Gateway.APIKey)

	assert.Equal(t, "https://api.perplexity.ai", cfg.Search.BaseURL)
	assert.Equal(t, "sonar", cfg.Search.Model)
	assert.Equal(t, "day", cfg.Search.RecencyFilter)
	assert.False(t, cfg.Search.Enabled())

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AIRA_SERVER_PORT", "9090")
	t.Setenv("AIRA_GATEWAY_API_KEY", "gw-key")
	t.Setenv("AIRA_SEARCH_API_KEY", "pplx-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gw-key", cfg.Gateway.APIKey)
	assert.True(t, cfg.Search.Enabled())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 18081
  mode: debug
log:
  level: debug
  format: text
gateway:
  model: google/gemini-2.5-flash
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18081, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.Gateway.Model)
	// Unset keys keep defaults.
	assert.Equal(t, "sonar", cfg.Search.Model)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080, Mode: "release"},
			Log:    LogConfig{Level: "info", Format: "json"},
			Gateway: GatewayConfig{
				BaseURL: "https://ai.gateway.lovable.dev/v1",
				Model:   "google/gemini-2.5-pro",
			},
			Search: SearchConfig{
				BaseURL: "https://api.perplexity.ai",
				Model:   "sonar",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "bad mode",
			mutate:  func(c *Config) { c.Server.Mode = "test" },
			wantErr: "invalid server mode",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "invalid log format",
		},
		{
			name:    "missing gateway url",
			mutate:  func(c *Config) { c.Gateway.BaseURL = "" },
			wantErr: "gateway.base_url is required",
		},
		{
			name:    "missing search model",
			mutate:  func(c *Config) { c.Search.Model = "" },
			wantErr: "search.model is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
