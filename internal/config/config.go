// Package config loads and saves the missionctl YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// HomeEnv overrides the configuration and data directory.
const HomeEnv = "MISSIONCTL_HOME"

// FileName is the configuration file name inside the home directory.
const FileName = "config.yaml"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config represents the missionctl configuration.
type Config struct {
	Storage       StorageConfig      `yaml:"storage"`
	Session       SessionConfig      `yaml:"session"`
	Notifications NotificationConfig `yaml:"notifications"`
	Log           LogConfig          `yaml:"log"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Backend     string `yaml:"backend"`                // sqlite, redis or memory
	Path        string `yaml:"path,omitempty"`         // sqlite file; defaults under the home directory
	RedisAddr   string `yaml:"redis_addr,omitempty"`   // host:port
	RedisDB     int    `yaml:"redis_db,omitempty"`
	RedisPrefix string `yaml:"redis_prefix,omitempty"` // prepended to every key
}

// SessionConfig tunes the mock login.
type SessionConfig struct {
	LoginDelay Duration `yaml:"login_delay"`
}

// NotificationConfig tunes the notification deriver.
type NotificationConfig struct {
	Dedup            string   `yaml:"dedup"` // mission or title
	Max              int      `yaml:"max"`
	CompletionWindow Duration `yaml:"completion_window"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a time.Duration that reads and writes as a string like "1s".
type Duration time.Duration

// MarshalYAML writes the duration in time.Duration string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:     BackendSQLite,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "missionctl:",
		},
		Session: SessionConfig{
			LoginDelay: Duration(time.Second),
		},
		Notifications: NotificationConfig{
			Dedup:            "mission",
			Max:              50,
			CompletionWindow: Duration(60 * time.Minute),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// HomeDir returns the missionctl home directory: $MISSIONCTL_HOME if set,
// otherwise ~/.missionctl.
func HomeDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".missionctl"), nil
}

// LoadConfig reads config.yaml from dir. A missing file yields Default().
// Keys absent from the file keep their default values.
func LoadConfig(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes config.yaml to dir.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("invalid storage.backend %q (want sqlite, redis or memory)", c.Storage.Backend)
	}
	switch c.Notifications.Dedup {
	case "mission", "title":
	default:
		return fmt.Errorf("invalid notifications.dedup %q (want mission or title)", c.Notifications.Dedup)
	}
	if c.Notifications.Max <= 0 {
		return fmt.Errorf("notifications.max must be positive, got %d", c.Notifications.Max)
	}
	if c.Session.LoginDelay < 0 {
		return fmt.Errorf("session.login_delay must not be negative")
	}
	return nil
}

// SQLitePath returns the configured database path, defaulting inside home.
func (c *Config) SQLitePath(home string) string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(home, "missionctl.db")
}
