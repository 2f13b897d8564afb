package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Timeout)
	}
	if cfg.StrictStatus {
		t.Error("strict status must default to off")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BOARDHUB_TOKEN", "env-token")
	t.Setenv("BOARDHUB_API_URL", "https://staging.example.com")
	t.Setenv("BOARDHUB_TIMEOUT", "10")
	t.Setenv("BOARDHUB_STRICT_STATUS", "true")

	cfg := NewConfig()
	cfg.LoadFromEnvironment()

	if cfg.Token != "env-token" {
		t.Errorf("unexpected token: %s", cfg.Token)
	}
	if cfg.BaseURL != "https://staging.example.com" {
		t.Errorf("unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Timeout)
	}
	if !cfg.StrictStatus {
		t.Error("strict status not picked up")
	}
}

func TestLoadFromEnvironmentIgnoresInvalid(t *testing.T) {
	t.Setenv("BOARDHUB_TIMEOUT", "soon")
	t.Setenv("BOARDHUB_STRICT_STATUS", "maybe")

	cfg := NewConfig()
	cfg.LoadFromEnvironment()

	if cfg.Timeout != 30*time.Second {
		t.Errorf("invalid timeout should keep the default, got %v", cfg.Timeout)
	}
	if cfg.StrictStatus {
		t.Error("invalid bool should keep the default")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boardhub.yaml")
	content := "token: file-token\nbase_url: https://file.example.com\ntimeout: 15\nstrict_status: true\noutput_dir: /tmp/snapshots\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := NewConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Token != "file-token" {
		t.Errorf("unexpected token: %s", cfg.Token)
	}
	if cfg.BaseURL != "https://file.example.com" {
		t.Errorf("unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Timeout)
	}
	if !cfg.StrictStatus {
		t.Error("strict status not picked up")
	}
	if cfg.OutputDir != "/tmp/snapshots" {
		t.Errorf("unexpected output dir: %s", cfg.OutputDir)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("missing file must not be an error: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("token: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := NewConfig()
	if err := cfg.LoadFromFile(path); err == nil {
		t.Error("expected an error for invalid yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) { c.Token = "tok" }, false},
		{"missing token", func(c *Config) {}, true},
		{"bad base URL", func(c *Config) { c.Token = "tok"; c.BaseURL = "not a url" }, true},
		{"zero timeout", func(c *Config) { c.Token = "tok"; c.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
