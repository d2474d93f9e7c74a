package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/edumanage/edudash/internal/errors"
)

// Config holds all startup configuration for the client.
//
// The backend URL and anon key identify the hosted backend (auth + REST) and
// are required: the process refuses to construct any boundary without them.
// Everything else has workable defaults.
type Config struct {
	// BackendURL is the base URL of the hosted backend project
	BackendURL string `yaml:"backend_url"`

	// AnonKey is the public API key sent with every request
	AnonKey string `yaml:"-"`

	// HTTPTimeoutSeconds bounds every backend request (default 30)
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`

	// Logging controls the structured logger
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives log output when the TUI owns the terminal;
	// empty means ~/.edudash/edudash.log
	File string `yaml:"file"`
}

// Dir returns the per-user configuration directory (~/.edudash).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".edudash"
	}
	return filepath.Join(home, ".edudash")
}

// FilePath returns the path of the optional YAML configuration file.
func FilePath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load builds the configuration from, in increasing precedence:
// the optional YAML file, a .env file in the working directory, and the
// process environment. Secrets (the anon key) are never read from YAML.
func Load() (*Config, error) {
	// Load .env if present; absence is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPTimeoutSeconds: 30,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}

	if data, err := os.ReadFile(FilePath()); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "invalid config file", err).
				WithSuggestion("Check the YAML syntax in " + FilePath())
		}
	}

	cfg.BackendURL = getEnv("EDUDASH_BACKEND_URL", cfg.BackendURL)
	cfg.AnonKey = getEnv("EDUDASH_ANON_KEY", "")
	cfg.Logging.Level = getEnv("EDUDASH_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("EDUDASH_LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.File = getEnv("EDUDASH_LOG_FILE", cfg.Logging.File)
	cfg.HTTPTimeoutSeconds = getEnvAsInt("EDUDASH_HTTP_TIMEOUT", cfg.HTTPTimeoutSeconds)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required values. A missing backend URL or anon key is
// fatal before any boundary is initialized.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return errors.NewConfigBackendURLError()
	}
	if c.AnonKey == "" {
		return errors.NewConfigAnonKeyError()
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "http timeout must be positive").
			WithSuggestion("Set EDUDASH_HTTP_TIMEOUT to a number of seconds greater than zero")
	}
	return nil
}

// HTTPTimeout returns the request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// LogFile returns the log file path, defaulting under the config dir.
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(Dir(), "edudash.log")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
