// Package config loads the client configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the client configuration. Values from the file override the
// defaults; command-line flags override both.
type Config struct {
	// RelayURL is the websocket URL of the message relay.
	RelayURL string `mapstructure:"relay_url" yaml:"relay_url"`

	// APIBaseURL is the base URL of the HTTP backend (account creation,
	// user load, history queries).
	APIBaseURL string `mapstructure:"api_base_url" yaml:"api_base_url"`

	// Email preselects the sign-in identity.
	Email string `mapstructure:"email" yaml:"email"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfigPath returns the default configuration file location,
// ~/.config/hotchat/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "hotchat", "config.yaml")
}

func defaultConfig() *Config {
	return &Config{
		RelayURL:   "ws://localhost:8080/ws",
		APIBaseURL: "http://localhost:8080",
		LogLevel:   "info",
	}
}

// Load reads the configuration from path using Viper. A missing file is not
// an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("relay_url", cfg.RelayURL)
	v.SetDefault("api_base_url", cfg.APIBaseURL)
	v.SetDefault("log_level", cfg.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
