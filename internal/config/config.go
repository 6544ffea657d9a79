// Package config handles configuration loading for earncal.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	Fetch    FetchConfig    `mapstructure:"fetch"    yaml:"fetch"`
	Output   OutputConfig   `mapstructure:"output"   yaml:"output"`
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// ProviderConfig selects and credentials the data providers.
type ProviderConfig struct {
	Default   string `mapstructure:"default"     yaml:"default"`     // "yfinance" or "fmp"
	FMPAPIKey string `mapstructure:"fmp_api_key" yaml:"fmp_api_key"` // enables the fmp provider
}

// FetchConfig holds resolution pipeline settings.
type FetchConfig struct {
	Delay time.Duration `mapstructure:"delay" yaml:"delay"` // pause between tickers
}

// OutputConfig holds persistence settings.
type OutputConfig struct {
	File string `mapstructure:"file" yaml:"file"` // CSV output path
}

// ServerConfig holds HTTP API server settings.
type ServerConfig struct {
	Addr        string   `mapstructure:"addr"         yaml:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./earncal.yaml (working directory)
//  2. ~/.earncal/earncal.yaml (home directory)
//  3. $XDG_CONFIG_HOME/earncal/earncal.yaml
//
// Environment variables override config file values.
// Format: EARNCAL_<SECTION>_<KEY>, e.g., EARNCAL_PROVIDER_FMP_API_KEY.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("earncal")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(homeDir(), ".earncal"))
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "earncal"))
	}

	v.SetEnvPrefix("EARNCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("EARNCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Provider defaults
	v.SetDefault("provider.default", "yfinance")

	// Fetch defaults
	v.SetDefault("fetch.delay", "1s")

	// Output defaults
	v.SetDefault("output.file", "earnings_dates.csv")

	// Server defaults
	v.SetDefault("server.addr", ":8420")
	v.SetDefault("server.cors_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
// The bare FMP_API_KEY is honored alongside the prefixed form since that is
// what FMP's own documentation tells users to export.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("EARNCAL_PROVIDER_FMP_API_KEY"); key != "" {
		cfg.Provider.FMPAPIKey = key
	}
	if key := os.Getenv("FMP_API_KEY"); key != "" && cfg.Provider.FMPAPIKey == "" {
		cfg.Provider.FMPAPIKey = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
