package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/conduit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conduit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: http://verdict.internal:9000
timeout: 3s
cache:
  backend: redis
  redis_addr: cache:6379
  ttl: 10m
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://verdict.internal:9000", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, config.CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	// untouched keys keep their defaults
	assert.Equal(t, "conduit:verdict:", cfg.Cache.Prefix)
	assert.Equal(t, ":8000", cfg.Listen)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative timeout", "timeout: -1s"},
		{"unknown backend", "cache: {backend: memcached}"},
		{"bad level", "log_level: loud"},
		{"not yaml", "endpoint: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "conduit.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	cfg.Timeout = 0
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)

	cfg = config.Default()
	cfg.Cache.Backend = config.CacheRedis
	cfg.Cache.RedisAddr = ""
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
}
