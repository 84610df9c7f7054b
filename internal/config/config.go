// Package config loads cadupdate settings from defaults, the global and
// local JSON config files, and CADUPDATE_ environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mark43/cadupdate/internal/update"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "CADUPDATE_"

// Configuration represents the cadupdate configuration
type Configuration struct {
	Owner        string `koanf:"owner" json:"owner" validate:"required"`
	Repo         string `koanf:"repo" json:"repo" validate:"required"`
	PackageName  string `koanf:"package_name" json:"package_name" validate:"required"`
	FeedURL      string `koanf:"feed_url" json:"feed_url" validate:"required,url"`
	DownloadURL  string `koanf:"download_url" json:"download_url" validate:"required,url"`
	Timeout      int    `koanf:"timeout" json:"timeout" validate:"min=0,max=3600"` // HTTP timeout in seconds, 0 disables
	ShowProgress bool   `koanf:"show_progress" json:"show_progress"`
	Notify       bool   `koanf:"notify" json:"notify"` // Desktop notification when an installer is ready
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply default %s: %w", key, err)
		}
	}

	if globalPath, err := GlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envTransform converts environment variable names to config keys
// Example: CADUPDATE_PACKAGE_NAME -> package_name
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// UpdaterConfig returns the package coordinates for update.NewUpdater.
func (c *Configuration) UpdaterConfig() update.Config {
	return update.Config{
		Owner:       c.Owner,
		Repo:        c.Repo,
		PackageName: c.PackageName,
	}
}

// HTTPTimeout returns Timeout as a duration.
func (c *Configuration) HTTPTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// UpdaterOptions returns the host and timeout options derived from c.
func (c *Configuration) UpdaterOptions() []update.Option {
	return []update.Option{
		update.WithFeedBaseURL(c.FeedURL),
		update.WithDownloadBaseURL(c.DownloadURL),
		update.WithTimeout(c.HTTPTimeout()),
	}
}
