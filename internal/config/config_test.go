package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"callsheet/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("expected missing config, got exists=true for %s", path)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Studio.Currency != "USD" {
		t.Fatalf("unexpected currency default: %q", cfg.Studio.Currency)
	}
	if len(cfg.Uploads.IncludePatterns) != 1 || cfg.Uploads.IncludePatterns[0] != "**/*" {
		t.Fatalf("unexpected include patterns: %v", cfg.Uploads.IncludePatterns)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `/data"
log_dir = "` + dir + `/logs"

[studio]
currency = "aud"
travel_rate_per_km = 1.2

[logging]
format = "JSON"
level = "Debug"

[uploads]
include_patterns = ["  **/*.mp4 ", ""]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Studio.Currency != "AUD" {
		t.Fatalf("currency not normalized: %q", cfg.Studio.Currency)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	if len(cfg.Uploads.IncludePatterns) != 1 || cfg.Uploads.IncludePatterns[0] != "**/*.mp4" {
		t.Fatalf("patterns not normalized: %v", cfg.Uploads.IncludePatterns)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("data dir not absolute: %s", cfg.Paths.DataDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "bad currency",
			mutate: func(c *config.Config) { c.Studio.Currency = "ZZZZ" },
			want:   "studio.currency",
		},
		{
			name:   "negative travel rate",
			mutate: func(c *config.Config) { c.Studio.TravelRatePerKm = -1 },
			want:   "travel_rate_per_km",
		},
		{
			name:   "bad log format",
			mutate: func(c *config.Config) { c.Logging.Format = "yaml" },
			want:   "logging.format",
		},
		{
			name:   "drive without credentials",
			mutate: func(c *config.Config) { c.Drive.Enabled = true; c.Drive.RootFolderID = "root" },
			want:   "drive.credentials_file",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Logging.Format = "console"
			cfg.Logging.Level = "info"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestEnvOverridesApply(t *testing.T) {
	t.Setenv("CALLSHEET_API_TOKEN", "secret-token")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.APIToken != "secret-token" {
		t.Fatalf("env override not applied: %q", cfg.Paths.APIToken)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[studio]") {
		t.Fatal("sample config missing studio section")
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to load")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}
