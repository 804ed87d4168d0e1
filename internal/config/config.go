// Package config loads conduit settings from a YAML file. Command-line flags
// override the loaded values.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/aretw0/conduit/internal/logging"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "conduit.yaml"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

var cacheBackends = []string{CacheNone, CacheMemory, CacheRedis}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every setting of the CLI and the reference service.
type Config struct {
	// Endpoint is the base URL of the verdict service.
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	LogLevel string        `yaml:"log_level"`

	// Listen is the address of the reference service (serve command).
	Listen      string `yaml:"listen"`
	MetricsPath string `yaml:"metrics_path"`

	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig selects the verdict cache.
type CacheConfig struct {
	Backend       string        `yaml:"backend"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
	Prefix        string        `yaml:"prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Endpoint:    "http://localhost:8000",
		Timeout:     15 * time.Second,
		LogLevel:    "info",
		Listen:      ":8000",
		MetricsPath: "/metrics",
		Cache: CacheConfig{
			Backend:   CacheNone,
			RedisAddr: "localhost:6379",
			TTL:       time.Hour,
			Prefix:    "conduit:verdict:",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalid, c.Timeout)
	}
	if c.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is empty", ErrInvalid)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !slices.Contains(cacheBackends, c.Cache.Backend) {
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalid, c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("%w: redis cache needs redis_addr", ErrInvalid)
	}
	return nil
}
