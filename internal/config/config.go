// Package config loads the YAML configuration for the job board CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvPath names the environment variable that points at the config file.
	EnvPath = "JOBBOARD_CONFIG"
	// DefaultPath is used when neither a flag nor EnvPath is set. A missing
	// file at this path is not an error.
	DefaultPath = "config.yaml"

	slackWebhookPrefix = "https://hooks.slack.com/"
	defaultBaseURL     = "https://empllo.com/api/v1"
)

// Config is the root configuration.
type Config struct {
	API          APIConfig
	Storage      StorageConfig
	Watch        WatchConfig
	Notification NotificationConfig
	UI           UIConfig
}

// APIConfig controls how the job feed is fetched.
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration // per-request timeout
	MaxRetries int           // additional attempts after the first failure
	RetryDelay time.Duration // first backoff delay, doubled per retry
	MinDelay   time.Duration // minimum gap between requests to the same host
}

// StorageConfig locates the local SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Interval time.Duration
	Queries  []string // a job matches when any query matches; empty matches all
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// UIConfig holds browser preferences.
type UIConfig struct {
	Theme string `yaml:"theme"` // initial theme when none is stored: "light" or "dark"
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	API          rawAPIConfig       `yaml:"api"`
	Storage      StorageConfig      `yaml:"storage"`
	Watch        rawWatchConfig     `yaml:"watch"`
	Notification NotificationConfig `yaml:"notification"`
	UI           UIConfig           `yaml:"ui"`
}

type rawAPIConfig struct {
	BaseURL    string `yaml:"base_url"`
	Timeout    string `yaml:"timeout"`
	MaxRetries *int   `yaml:"max_retries"`
	RetryDelay string `yaml:"retry_delay"`
	MinDelay   string `yaml:"min_delay"`
}

type rawWatchConfig struct {
	Interval string   `yaml:"interval"`
	Queries  []string `yaml:"queries"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    defaultBaseURL,
			Timeout:    10 * time.Second,
			MaxRetries: 2,
			RetryDelay: 2 * time.Second,
			MinDelay:   time.Second,
		},
		Storage:      StorageConfig{Path: "jobboard.db"},
		Watch:        WatchConfig{Interval: 15 * time.Minute},
		Notification: NotificationConfig{Type: "log"},
		UI:           UIConfig{Theme: "light"},
	}
}

// Resolve picks the config path: flagPath, then $JOBBOARD_CONFIG, then
// DefaultPath. explicit is false only for the DefaultPath fallback.
func Resolve(flagPath string) (path string, explicit bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env, true
	}
	return DefaultPath, false
}

// LoadResolved resolves the path for flagPath and loads it. A missing file
// at the default path yields Default().
func LoadResolved(flagPath string) (*Config, error) {
	path, explicit := Resolve(flagPath)
	cfg, err := Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. Unset keys keep their Default() values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.API.BaseURL != "" {
		cfg.API.BaseURL = strings.TrimRight(raw.API.BaseURL, "/")
	}
	if raw.API.MaxRetries != nil {
		cfg.API.MaxRetries = *raw.API.MaxRetries
	}
	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"api.timeout", raw.API.Timeout, &cfg.API.Timeout},
		{"api.retry_delay", raw.API.RetryDelay, &cfg.API.RetryDelay},
		{"api.min_delay", raw.API.MinDelay, &cfg.API.MinDelay},
		{"watch.interval", raw.Watch.Interval, &cfg.Watch.Interval},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", d.key, d.raw, err)
		}
		*d.dst = v
	}

	if raw.Storage.Path != "" {
		cfg.Storage.Path = raw.Storage.Path
	}
	cfg.Watch.Queries = raw.Watch.Queries
	if raw.Notification.Type != "" {
		cfg.Notification = raw.Notification
	}
	if raw.UI.Theme != "" {
		cfg.UI.Theme = strings.ToLower(raw.UI.Theme)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %v", cfg.API.Timeout)
	}
	if cfg.API.MaxRetries < 0 || cfg.API.MaxRetries > 10 {
		return fmt.Errorf("api.max_retries must be between 0 and 10, got %d", cfg.API.MaxRetries)
	}
	if cfg.API.RetryDelay < 0 || cfg.API.MinDelay < 0 {
		return fmt.Errorf("api.retry_delay and api.min_delay must not be negative")
	}
	if cfg.Watch.Interval < time.Minute {
		return fmt.Errorf("watch.interval must be at least 1m, got %v", cfg.Watch.Interval)
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, slackWebhookPrefix) {
			return fmt.Errorf("notification.webhook_url must start with %s", slackWebhookPrefix)
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	if cfg.UI.Theme != "light" && cfg.UI.Theme != "dark" {
		return fmt.Errorf("ui.theme must be \"light\" or \"dark\", got %q", cfg.UI.Theme)
	}
	return nil
}
