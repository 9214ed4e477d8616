// Package config loads service settings from an optional YAML file and
// SCREENING_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, so server.port is
// read from SCREENING_SERVER_PORT.
const EnvPrefix = "SCREENING"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" json:"server" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"database" json:"database" yaml:"database"`
	Redis     RedisConfig     `mapstructure:"redis" json:"redis" yaml:"redis"`
	Screening ScreeningConfig `mapstructure:"screening" json:"screening" yaml:"screening"`
	Logging   LoggingConfig   `mapstructure:"logging" json:"logging" yaml:"logging"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" json:"rate_limit" yaml:"rate_limit"`
	Fetch     FetchConfig     `mapstructure:"fetch" json:"fetch" yaml:"fetch"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port" json:"port" yaml:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" json:"idle_timeout" yaml:"idle_timeout"`
}

// DatabaseConfig points at the postgres store. An empty URL disables
// persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url" json:"url" yaml:"url"`
}

// RedisConfig points at the result cache. An empty address disables caching.
type RedisConfig struct {
	Address  string        `mapstructure:"address" json:"address" yaml:"address"`
	Password string        `mapstructure:"password" json:"-" yaml:"-"`
	DB       int           `mapstructure:"db" json:"db" yaml:"db"`
	TTL      time.Duration `mapstructure:"ttl" json:"ttl" yaml:"ttl"`
}

// ScreeningConfig tunes the analyzers.
type ScreeningConfig struct {
	BulkConcurrency int `mapstructure:"bulk_concurrency" json:"bulk_concurrency" yaml:"bulk_concurrency"`
	// FixedYear pins "present" in experience ranges. Zero uses the clock.
	FixedYear int `mapstructure:"fixed_year" json:"fixed_year" yaml:"fixed_year"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
}

// RateLimitConfig configures the per-client token buckets of the HTTP server.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit" json:"default_limit" yaml:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window" json:"default_window" yaml:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" json:"cleanup_interval" yaml:"cleanup_interval"`
	Whitelist       []string      `mapstructure:"whitelist" json:"whitelist" yaml:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist" json:"blacklist" yaml:"blacklist"`
}

// FetchConfig controls job posting downloads.
type FetchConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
	UseBrowser bool          `mapstructure:"use_browser" json:"use_browser" yaml:"use_browser"`
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validFormats = map[string]bool{"json": true, "console": true}

// Load reads configuration from path (optional) and the environment. A .env
// file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Redis:     RedisConfig{TTL: time.Hour},
		Screening: ScreeningConfig{BulkConcurrency: 8},
		Logging:   LoggingConfig{Level: "info", Format: "json"},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Fetch: FetchConfig{Timeout: 30 * time.Second},
	}
	return cfg
}

// setDefaults registers every key so that environment overrides are seen by
// Unmarshal even when the YAML file omits them.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("database.url", "")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", d.Redis.TTL)
	v.SetDefault("screening.bulk_concurrency", d.Screening.BulkConcurrency)
	v.SetDefault("screening.fixed_year", 0)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.default_limit", d.RateLimit.DefaultLimit)
	v.SetDefault("rate_limit.default_window", d.RateLimit.DefaultWindow)
	v.SetDefault("rate_limit.cleanup_interval", d.RateLimit.CleanupInterval)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.use_browser", false)
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.RateLimit.Whitelist = trimList(c.RateLimit.Whitelist)
	c.RateLimit.Blacklist = trimList(c.RateLimit.Blacklist)
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Screening.BulkConcurrency < 1 {
		return fmt.Errorf("screening.bulk_concurrency must be at least 1, got %d", c.Screening.BulkConcurrency)
	}
	if c.Screening.FixedYear < 0 {
		return fmt.Errorf("screening.fixed_year must not be negative")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative")
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of debug, info, warn or error, got %q", c.Logging.Level)
	}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit <= 0 {
			return fmt.Errorf("rate_limit.default_limit must be positive when rate limiting is enabled")
		}
		if c.RateLimit.DefaultWindow <= 0 {
			return fmt.Errorf("rate_limit.default_window must be positive when rate limiting is enabled")
		}
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
