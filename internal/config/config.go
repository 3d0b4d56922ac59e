// Package config reads the optional uplc.yaml the CLI consults for its
// defaults: backend choice, trace echo and logging.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/uplc/internal/logger"
)

// Config represents the top-level uplc.yaml configuration.
type Config struct {
	// Backend selects the execution engine: "jit" (the default) or
	// "tree-walk". Flags override this.
	Backend string `yaml:"backend,omitempty"`

	// Trace echoes the machine's trace log to stderr after evaluation.
	Trace bool `yaml:"trace,omitempty"`

	// Log configures the CLI logger.
	Log Log `yaml:"log,omitempty"`
}

// Log is the logging section.
type Log struct {
	// Format is one of auto, console, logfmt or json.
	Format string `yaml:"format,omitempty"`

	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads and parses a uplc.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses uplc.yaml content from bytes. The path argument is used
// only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// Find searches for uplc.yaml starting from dir and walking up to parent
// directories. Returns the path if found, or empty string and nil error
// if not found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "uplc.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, "uplc.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors. Backend names
// are left to backend selection so the list lives in one place.
func (c *Config) validate(path string) error {
	switch c.Log.Format {
	case "", "auto", "console", "logfmt", "json":
	default:
		return fmt.Errorf("%s: unknown log format %q", path, c.Log.Format)
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%s: unknown log level %q", path, c.Log.Level)
		}
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.Backend == "" {
		c.Backend = "jit"
	}
	if c.Log.Format == "" {
		c.Log.Format = "auto"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// LoggerConfig converts the log section into the logger package's config.
func (c *Config) LoggerConfig() (logger.Config, error) {
	lc := logger.NewConfig()
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}
	if c.Log.Level != "" {
		level, err := zapcore.ParseLevel(c.Log.Level)
		if err != nil {
			return lc, fmt.Errorf("log level %q: %w", c.Log.Level, err)
		}
		lc.Level = level
	}
	return lc, nil
}
