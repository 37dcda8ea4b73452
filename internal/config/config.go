// Package config loads runtime settings from YELP_* environment variables.
//
// A .env file in the working directory is loaded first when present.
// Variable names map to nested keys by their first underscore:
// YELP_STORAGE_SQLITE_PATH becomes storage.sqlite_path.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "YELP_"

// Storage drivers accepted by StorageConfig.Driver.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverGorm     = "gorm"
)

// Config is the root configuration object.
type Config struct {
	Storage  StorageConfig  `koanf:"storage" validate:"required"`
	Postgres PostgresConfig `koanf:"postgres"`
	Redis    RedisConfig    `koanf:"redis"`
	Log      LogConfig      `koanf:"log"`
	Ranking  RankingConfig  `koanf:"ranking"`
}

// StorageConfig selects the Store backend.
type StorageConfig struct {
	Driver     string `koanf:"driver" validate:"required,oneof=memory sqlite postgres gorm"`
	SQLitePath string `koanf:"sqlite_path" validate:"required_if=Driver sqlite,required_if=Driver gorm"`
}

// PostgresConfig holds the connection string for the postgres driver.
type PostgresConfig struct {
	DSN string `koanf:"dsn"`
}

// RedisConfig enables the Redis ranking cache when Address is set.
type RedisConfig struct {
	Address string `koanf:"address" validate:"omitempty,hostname_port"`
	Prefix  string `koanf:"prefix"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// RankingConfig controls how long TopTwo results are cached.
type RankingConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// Default returns the configuration used when no variables are set.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			SQLitePath: "./data/reviews.db",
		},
		Redis: RedisConfig{
			Prefix: "yelp:",
		},
		Log: LogConfig{
			Level: "info",
		},
		Ranking: RankingConfig{
			CacheTTL: 30 * time.Second,
		},
	}
}

// envKey turns YELP_STORAGE_SQLITE_PATH into storage.sqlite_path.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
}

// Load reads YELP_* variables over the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field rules and driver-specific requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.Storage.Driver == DriverPostgres && c.Postgres.DSN == "" {
		return fmt.Errorf("config validation failed: %sPOSTGRES_DSN is required for the postgres driver", envPrefix)
	}
	return nil
}

// CacheEnabled reports whether a Redis ranking cache should be attached.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Address != ""
}
