package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/boiler-optimizer/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Fatalf("expected default max body size, got %d", cfg.BodySizeBytes())
	}
	if cfg.ReadTimeoutDuration() != 15*time.Second || cfg.WriteTimeoutDuration() != 15*time.Second {
		t.Fatalf("expected 15s timeouts, got %v/%v", cfg.ReadTimeoutDuration(), cfg.WriteTimeoutDuration())
	}
	if cfg.Cache.Enabled() {
		t.Fatal("expected cache to be disabled by default")
	}
	if cfg.Cache.TTLDuration() != 10*time.Minute {
		t.Fatalf("expected default cache ttl of 10m, got %v", cfg.Cache.TTLDuration())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Fatalf("expected default body size, got %d", cfg.BodySizeBytes())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxBodySize: 16K
readTimeout: 5s
writeTimeout: 1m
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
cache:
  redisUrl: redis://localhost:6379/0
  ttl: 30s
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.BodySizeBytes() != 16*1024 {
		t.Fatalf("expected max body override, got %d", cfg.BodySizeBytes())
	}
	if cfg.ReadTimeoutDuration() != 5*time.Second {
		t.Fatalf("expected read timeout 5s, got %v", cfg.ReadTimeoutDuration())
	}
	if cfg.WriteTimeoutDuration() != time.Minute {
		t.Fatalf("expected write timeout 1m, got %v", cfg.WriteTimeoutDuration())
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected logging format console, got %s", cfg.Logging.Format)
	}
	if cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("expected logging outputFile /tmp/server.log, got %s", cfg.Logging.OutputFile)
	}
	if !cfg.Cache.Enabled() {
		t.Fatal("expected cache to be enabled")
	}
	if cfg.Cache.TTLDuration() != 30*time.Second {
		t.Fatalf("expected cache ttl 30s, got %v", cfg.Cache.TTLDuration())
	}

	cfg.SetBodySizeBytes(1024)
	if cfg.BodySizeBytes() != 1024 || cfg.MaxBodySize != "1024" {
		t.Fatalf("SetBodySizeBytes did not apply: %d %s", cfg.BodySizeBytes(), cfg.MaxBodySize)
	}
	cfg.SetBodySizeBytes(0)
	if cfg.BodySizeBytes() != 1024 {
		t.Fatalf("SetBodySizeBytes(0) should be ignored, got %d", cfg.BodySizeBytes())
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"bad size":       "maxBodySize: invalid",
		"bad timeout":    "readTimeout: soon",
		"negative ttl":   "cache:\n  ttl: -5s",
		"malformed yaml": "address: [unterminated",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("expected error for %s but got nil", name)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxBodySizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	if _, err := ParseSize("1TB"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
}
