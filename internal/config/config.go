// Package config loads admixmap settings from .env, an optional YAML file and
// ADMIXMAP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yumyai/admixmap/logger"
	"github.com/yumyai/admixmap/pkg/model"
)

const envPrefix = "ADMIXMAP"

type Config struct {
	DataDir            string  `mapstructure:"data_dir"`
	GeographyDir       string  `mapstructure:"geography_dir"`
	RegistryDB         string  `mapstructure:"registry_db"`
	ListenAddr         string  `mapstructure:"listen_addr"`
	LogLevel           string  `mapstructure:"log_level"`
	ParseMode          string  `mapstructure:"parse_mode"`
	SumTolerance       float64 `mapstructure:"sum_tolerance"`
	GeographyCacheSize int     `mapstructure:"geography_cache_size"`
	StaticDir          string  `mapstructure:"static_dir"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", "./data")
	v.SetDefault("geography_dir", "")
	v.SetDefault("registry_db", "")
	v.SetDefault("listen_addr", "0.0.0.0:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("parse_mode", "lenient")
	v.SetDefault("sum_tolerance", model.DefaultSumTolerance)
	v.SetDefault("geography_cache_size", 16)
	v.SetDefault("static_dir", "./static")
	return v
}

// LoadEnvFile copies the variables of the given .env files (default ".env")
// into the process environment. Variables already set are kept.
// It runs before the logger exists, so the caller reports the error.
func LoadEnvFile(paths ...string) error {
	return godotenv.Load(paths...)
}

// Load reads configPath (if non-empty), then environment overrides.
// Call LoadEnvFile first for .env support.
func Load(configPath string) (*Config, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills settings derived from other settings.
func (c *Config) ApplyDefaults() {
	if c.GeographyDir == "" {
		c.GeographyDir = filepath.Join(c.DataDir, "geojson")
	}
}

func (c *Config) Validate() error {
	var errs []error
	if _, ok := model.NewParseMode(c.ParseMode); !ok {
		errs = append(errs, fmt.Errorf("parse_mode %q must be lenient or strict", c.ParseMode))
	}
	if c.GeographyCacheSize < 1 {
		errs = append(errs, fmt.Errorf("geography_cache_size must be at least 1, got %d", c.GeographyCacheSize))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen_addr is empty"))
	}
	return errors.Join(errs...)
}

// Mode returns the validated parse mode.
func (c *Config) Mode() model.ParseMode {
	mode, _ := model.NewParseMode(c.ParseMode)
	return mode
}

func (c *Config) ConsistencyOptions() model.ConsistencyOptions {
	return model.ConsistencyOptions{SumTolerance: c.SumTolerance}
}
