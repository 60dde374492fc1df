// Package config loads wellnest configuration from an optional YAML file,
// a .env file and WELLNEST_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/validation"
)

// Config is the resolved runtime configuration.
type Config struct {
	// Store is the preference store DSN: a .db path, a .json path, a postgres URL or "memory:".
	Store            string       `yaml:"store"`
	Timezone         string       `yaml:"timezone" validate:"timezone"`
	AllowExactAlarms bool         `yaml:"allow_exact_alarms"`
	Notifier         string       `yaml:"notifier" validate:"oneof=auto tray console"`
	Widget           WidgetConfig `yaml:"widget"`
}

// WidgetConfig configures the summary surfaces.
type WidgetConfig struct {
	// File receives the summary as JSON on every refresh. Empty disables it.
	File string `yaml:"file"`
	// NATSURL enables publishing the summary to NATSSubject.
	NATSURL     string `yaml:"nats_url"`
	NATSSubject string `yaml:"nats_subject"`
	// Listen is the address of the widget HTTP server.
	Listen string `yaml:"listen"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Store:    constants.DefaultStorePath,
		Timezone: constants.DefaultTimezone,
		Notifier: "auto",
		Widget: WidgetConfig{
			NATSSubject: constants.DefaultNATSSubject,
			Listen:      constants.DefaultWidgetAddr,
		},
	}
}

// LoadDotEnv loads a .env file from the working directory if one exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", "error", err)
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Config file not found, using defaults", "path", expanded)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from WELLNEST_* variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := func(name string) string {
		return strings.TrimSpace(getenv(constants.EnvPrefix + name))
	}

	if v := env("STORE"); v != "" {
		c.Store = v
	}
	if v := env("TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := env("ALLOW_EXACT_ALARMS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AllowExactAlarms = b
		} else {
			logger.Warn("Ignoring invalid boolean", "var", constants.EnvPrefix+"ALLOW_EXACT_ALARMS", "value", v)
		}
	}
	if v := env("NOTIFIER"); v != "" {
		c.Notifier = v
	}
	if v := env("WIDGET_FILE"); v != "" {
		c.Widget.File = v
	}
	if v := env("NATS_URL"); v != "" {
		c.Widget.NATSURL = v
	}
	if v := env("NATS_SUBJECT"); v != "" {
		c.Widget.NATSSubject = v
	}
	if v := env("WIDGET_LISTEN"); v != "" {
		c.Widget.Listen = v
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	return validation.Struct(c)
}

// ConfigDir returns the directory holding logs, backups and the default store.
func (c *Config) ConfigDir() string {
	if isFilePath(c.Store) {
		if p, err := utils.ExpandHome(c.Store); err == nil {
			return filepath.Dir(p)
		}
	}
	p, err := utils.ExpandHome(filepath.Dir(constants.DefaultStorePath))
	if err != nil {
		return "."
	}
	return p
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(expanded, data, 0600)
}

func isFilePath(dsn string) bool {
	return dsn != "" &&
		!strings.HasPrefix(dsn, "postgres://") &&
		!strings.HasPrefix(dsn, "postgresql://") &&
		!strings.HasPrefix(dsn, "memory:") &&
		!strings.Contains(dsn, "host=")
}
