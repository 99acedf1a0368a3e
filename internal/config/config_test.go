package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webflow.yaml")
	content := `
dir: ./flows
log-level: debug
strict: true
redis:
  addr: localhost:6379
  db: 2
  prefix: app:flows:
  ttl: 1h
server:
  addr: 127.0.0.1:9090
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./flows", cfg.Dir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "app:flows:", cfg.Redis.Prefix)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webflow.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dir": "defs"}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "defs", cfg.Dir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err, "explicit path must exist")

	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dir: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
