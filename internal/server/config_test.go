package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/emi-calculator/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.RequestSizeBytes() != constants.DefaultMaxRequestSizeBytes {
		t.Fatalf("expected default request size, got %d", cfg.RequestSizeBytes())
	}
	if cfg.MaxTermYears != constants.DefaultMaxTermYears {
		t.Fatalf("expected default max term, got %v", cfg.MaxTermYears)
	}
	if cfg.RateLimit.Requests != constants.DefaultRateLimitRequests || cfg.RateLimit.Window != time.Minute {
		t.Fatalf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	contents := []byte(`address: 127.0.0.1:9000
maxRequestSize: 16K
maxTermYears: 40
rateLimit:
  requests: 5
  window: 30s
logging:
  level: debug
  format: console
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Errorf("expected address override, got %s", cfg.Address)
	}
	if cfg.RequestSizeBytes() != 16*1024 {
		t.Errorf("expected request size override, got %d", cfg.RequestSizeBytes())
	}
	if cfg.MaxTermYears != 40 {
		t.Errorf("expected max term 40, got %v", cfg.MaxTermYears)
	}
	if cfg.RateLimit.Requests != 5 || cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("unexpected rate limit %+v", cfg.RateLimit)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"bad size":       "maxRequestSize: invalid",
		"negative limit": "rateLimit:\n  requests: -1",
		"malformed yaml": "address: [",
		"bad duration":   "rateLimit:\n  window: soon",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatal("expected error but got nil")
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxRequestSizeBytes,
		"1024":      1024,
		"512b":      512,
		"64K":       64 * 1024,
		"1m":        1024 * 1024,
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

	if _, err := ParseSize("1GB"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
}
