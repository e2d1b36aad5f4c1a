package config

import (
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/pacer/pascheck/internal/testutil"
)

func TestConfig_applyDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Lexer.MaxInteger != 32767 {
		t.Errorf("Lexer.MaxInteger = %v, want 32767", cfg.Lexer.MaxInteger)
	}
	if cfg.Parser.MaxDepth != 256 {
		t.Errorf("Parser.MaxDepth = %v, want 256", cfg.Parser.MaxDepth)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}
	if cfg.Report.Format != "listing" {
		t.Errorf("Report.Format = %v, want listing", cfg.Report.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must be valid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := testutil.TempDir(t, map[string]string{
		"pascheck.toml": `
[listing]
path = "$PASCHECK_TEST_DIR/out.lst"

[lexer]
fold_identifiers = true
max_integer = 65535

[log]
level = "debug"
`,
		"pascheck.yaml": `
trace:
  path: trace.txt
parser:
  max_depth: 64
report:
  format: json
  color: true
`,
		"broken.toml": "[lexer\nmax_integer = ",
		"broken.yml":  "lexer: [",
		"invalid.toml": `
[log]
format = "xml"
`,
	})

	t.Setenv("PASCHECK_TEST_DIR", "/tmp/x")

	t.Run("toml", func(t *testing.T) {
		cfg, err := Load(filepath.Join(dir, "pascheck.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.Lexer.FoldIdentifiers || cfg.Lexer.MaxInteger != 65535 {
			t.Errorf("unexpected lexer config %+v", cfg.Lexer)
		}
		if cfg.Listing.Path != "/tmp/x/out.lst" {
			t.Errorf("Listing.Path = %q, want the expanded path", cfg.Listing.Path)
		}
		if level, _ := cfg.LogLevel(); level != slog.LevelDebug {
			t.Errorf("LogLevel = %v, want debug", level)
		}
		if cfg.Parser.MaxDepth != 256 {
			t.Errorf("missing values must take their default, got %d", cfg.Parser.MaxDepth)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		cfg, err := Load(filepath.Join(dir, "pascheck.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Trace.Path != "trace.txt" || cfg.Parser.MaxDepth != 64 {
			t.Errorf("unexpected config %+v", cfg)
		}
		if cfg.Report.Format != "json" || !cfg.Report.Color {
			t.Errorf("unexpected report config %+v", cfg.Report)
		}
	})

	errorCases := []struct {
		name     string
		file     string
		notFound bool
	}{
		{"missing", "absent.toml", true},
		{"broken toml", "broken.toml", false},
		{"broken yaml", "broken.yml", false},
		{"invalid value", "invalid.toml", false},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(dir, tt.file))
			if err == nil || cfg != nil {
				t.Fatalf("Expected an error, got %+v", cfg)
			}

			if errors.Is(err, ErrNotFound) != tt.notFound {
				t.Errorf("errors.Is(err, ErrNotFound) mismatch for %v", err)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	dir := testutil.TempDir(t, map[string]string{
		"custom.toml": "[lexer]\nmax_integer = 100\n",
	})

	t.Setenv(EnvVar, filepath.Join(dir, "custom.toml"))

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Lexer.MaxInteger != 100 {
		t.Errorf("Lexer.MaxInteger = %d, want 100", cfg.Lexer.MaxInteger)
	}

	t.Setenv(EnvVar, filepath.Join(dir, "absent.toml"))

	if _, err := LoadFromEnv(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative max integer", func(c *Config) { c.Lexer.MaxInteger = -1 }},
		{"negative depth", func(c *Config) { c.Parser.MaxDepth = -5 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			if err := cfg.Validate(); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}
