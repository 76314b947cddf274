// Package config loads server settings from an optional config.yml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const defaultJWTSecret = "change-me-to-a-random-secret-of-32-chars"

// Config holds application configuration values.
type Config struct {
	Port               string  `mapstructure:"PORT"`
	Env                string  `mapstructure:"APP_ENV"`
	LogLevel           string  `mapstructure:"LOG_LEVEL"`
	JWTSecret          string  `mapstructure:"JWT_SECRET"`
	BcryptCost         int     `mapstructure:"BCRYPT_COST"`
	CookieSecure       bool    `mapstructure:"COOKIE_SECURE"`
	StorageBackend     string  `mapstructure:"STORAGE_BACKEND"`
	DatabasePath       string  `mapstructure:"DATABASE_PATH"`
	RedisURL           string  `mapstructure:"REDIS_URL"`
	RedisKeyPrefix     string  `mapstructure:"REDIS_KEY_PREFIX"`
	CacheTTLSeconds    int     `mapstructure:"CACHE_TTL_SECONDS"`
	CacheMaxSize       int     `mapstructure:"CACHE_MAX_SIZE"`
	LoginRatePerSecond float64 `mapstructure:"LOGIN_RATE_PER_SECOND"`
	LoginBurst         float64 `mapstructure:"LOGIN_BURST"`
	DemoSeedUsers      int     `mapstructure:"DEMO_SEED_USERS"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("STORAGE_BACKEND", BackendSQLite)
	v.SetDefault("DATABASE_PATH", "skillswap.db")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("REDIS_KEY_PREFIX", "skillswap:")
	v.SetDefault("CACHE_TTL_SECONDS", 120)
	v.SetDefault("CACHE_MAX_SIZE", 20)
	v.SetDefault("LOGIN_RATE_PER_SECOND", 0.2)
	v.SetDefault("LOGIN_BURST", 5)
	v.SetDefault("DEMO_SEED_USERS", 0)
}

// Load reads config.yml from the given directories (the working directory
// when none are given), then applies environment overrides.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate checks required values and production safety rules.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	switch c.StorageBackend {
	case BackendSQLite:
		if c.DatabasePath == "" {
			return errors.New("DATABASE_PATH is required for the sqlite backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.CacheTTLSeconds < 0 || c.CacheMaxSize < 0 {
		return errors.New("CACHE_TTL_SECONDS and CACHE_MAX_SIZE must not be negative")
	}
	if c.LoginBurst < 1 {
		return errors.New("LOGIN_BURST must be at least 1")
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.StorageBackend == BackendMemory {
			return errors.New("the memory backend is not allowed in production")
		}
	} else if len(c.JWTSecret) < 32 {
		slog.Warn("JWT_SECRET is shorter than 32 characters")
	}
	return nil
}

// Level parses LOG_LEVEL.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
