package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/boiler-optimizer/internal/config"
	"github.com/iwvelando/boiler-optimizer/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address      string               `yaml:"address"`
	MaxBodySize  string               `yaml:"maxBodySize"`
	ReadTimeout  string               `yaml:"readTimeout"`
	WriteTimeout string               `yaml:"writeTimeout"`
	Logging      config.LoggingConfig `yaml:"logging"`
	Cache        CacheConfig          `yaml:"cache"`

	bodySizeBytes int64
	readTimeout   time.Duration
	writeTimeout  time.Duration
}

// CacheConfig enables the Redis response cache when RedisURL is set.
type CacheConfig struct {
	RedisURL string `yaml:"redisUrl"`
	TTL      string `yaml:"ttl"`

	ttl time.Duration
}

// Enabled reports whether a cache backend is configured.
func (c CacheConfig) Enabled() bool {
	return strings.TrimSpace(c.RedisURL) != ""
}

// TTLDuration returns the parsed cache entry lifetime.
func (c CacheConfig) TTLDuration() time.Duration {
	return c.ttl
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:     constants.DefaultServerAddress,
		MaxBodySize: fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes),
		Logging:     config.LoggingConfig{},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read server config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BodySizeBytes returns the configured request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SetBodySizeBytes overrides the configured body size limit.
func (c *Config) SetBodySizeBytes(size int64) {
	if size > 0 {
		c.bodySizeBytes = size
		c.MaxBodySize = fmt.Sprintf("%d", size)
	}
}

// ReadTimeoutDuration returns the server read timeout; zero means none.
func (c *Config) ReadTimeoutDuration() time.Duration {
	return c.readTimeout
}

// WriteTimeoutDuration returns the server write timeout; zero means none.
func (c *Config) WriteTimeoutDuration() time.Duration {
	return c.writeTimeout
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	bytes, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxBodySizeBytes
	}
	c.bodySizeBytes = bytes
	c.MaxBodySize = fmt.Sprintf("%d", bytes)

	if c.readTimeout, err = parseDuration("readTimeout", c.ReadTimeout, 15*time.Second); err != nil {
		return err
	}
	if c.writeTimeout, err = parseDuration("writeTimeout", c.WriteTimeout, 15*time.Second); err != nil {
		return err
	}

	if c.Cache.TTL == "" {
		c.Cache.TTL = constants.DefaultCacheTTL
	}
	if c.Cache.ttl, err = parseDuration("cache.ttl", c.Cache.TTL, 0); err != nil {
		return err
	}
	return nil
}

func parseDuration(name, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", name, value)
	}
	return d, nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
