// Package config loads the pascheck settings from a TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable pointing at the config file.
const EnvVar = "PASCHECK_CONFIG"

var ErrNotFound = errors.New("no config file found")

// Config holds the complete configuration.
type Config struct {
	Listing ListingConfig `toml:"listing" yaml:"listing"`
	Trace   TraceConfig   `toml:"trace" yaml:"trace"`
	Lexer   LexerConfig   `toml:"lexer" yaml:"lexer"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Report  ReportConfig  `toml:"report" yaml:"report"`
}

type ListingConfig struct {
	// Path of the listing file; "-" is standard output, empty disables it.
	Path string `toml:"path" yaml:"path"`
}

type TraceConfig struct {
	// Path of the lexeme trace; empty disables it.
	Path string `toml:"path" yaml:"path"`
}

type LexerConfig struct {
	FoldIdentifiers bool `toml:"fold_identifiers" yaml:"fold_identifiers"`
	MaxInteger      int  `toml:"max_integer" yaml:"max_integer"`
}

type ParserConfig struct {
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	// File receives the log; empty means the user cache directory.
	File string `toml:"file" yaml:"file"`
}

type ReportConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	return cfg
}

// Load reads the file at path, choosing the format by extension: .yaml and
// .yml are YAML, anything else is TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	//nolint:gosec // path is given by the user
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse toml config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// DefaultPaths lists where LoadFromEnv looks when EnvVar is unset.
func DefaultPaths() []string {
	paths := []string{
		"./pascheck.toml",
		"./pascheck.yaml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pascheck", "config.toml"))
	}

	return paths
}

// LoadFromEnv loads the file named by EnvVar, or the first of DefaultPaths
// that exists. ErrNotFound is returned when there is none.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, fmt.Errorf("%w: set %s or create pascheck.toml", ErrNotFound, EnvVar)
	}

	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.Lexer.MaxInteger == 0 {
		c.Lexer.MaxInteger = 32767
	}
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = 256
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Report.Format == "" {
		c.Report.Format = "listing"
	}
}

func (c *Config) expandEnvVars() {
	c.Listing.Path = os.ExpandEnv(c.Listing.Path)
	c.Trace.Path = os.ExpandEnv(c.Trace.Path)
	c.Log.File = os.ExpandEnv(c.Log.File)
}

// Validate reports the first setting out of its domain.
func (c *Config) Validate() error {
	if c.Lexer.MaxInteger < 0 {
		return fmt.Errorf("lexer.max_integer must be positive, got %d", c.Lexer.MaxInteger)
	}

	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must be positive, got %d", c.Parser.MaxDepth)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}

	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}

	return level, nil
}
