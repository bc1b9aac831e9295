// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "scholar-search/0.1", cfg.Client.UserAgent)
	assert.Equal(t, 0, cfg.Client.MaxRetries)
	assert.Empty(t, cfg.Client.APIKey)
	assert.Equal(t, "default", cfg.Session.Name)
	assert.Equal(t, "sessions.db", filepath.Base(cfg.Session.DBPath))
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:8080", cfg.Serve.Addr)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scholar-search.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
client:
  timeout: 5s
  max_retries: 3
  api_key: from-file
session:
  name: thesis
log:
  level: debug
  pretty: true
`), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 3, cfg.Client.MaxRetries)
	assert.Equal(t, "from-file", cfg.Client.APIKey)
	assert.Equal(t, "thesis", cfg.Session.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SCHOLAR_SEARCH_CLIENT_API_KEY", "from-env")
	t.Setenv("SCHOLAR_SEARCH_SESSION_NAME", "lab")

	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Client.APIKey)
	assert.Equal(t, "lab", cfg.Session.Name)
}

func TestLoadRejectsInvalid(t *testing.T) {
	v := newViper()
	v.Set("client.max_retries", 50)
	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxRetries")

	v = newViper()
	v.Set("session.name", "")
	_, err = Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
}
