// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from an optional
// TOML file and environment variables. It provides a centralized Config
// struct used across the application.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// defaultPassword is the placeholder password shipped in example DSNs.
const defaultPassword = "changeme"

// Preferred caption fonts on Debian-based images. Missing files fall back
// to the built-in typefaces.
const (
	defaultRegularFont = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	defaultBoldFont    = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
)

// Config holds all application configuration values. Precedence is
// defaults, then the TOML file named by KACHEL_CONFIG, then environment
// variables.
type Config struct {
	// Server settings
	Host      string `toml:"host"`
	Port      string `toml:"port"`
	Env       string `toml:"env"` // "development", "production", "testing"
	PublicURL string `toml:"public_url"`

	// DatabaseURL is a postgres:// DSN or a SQLite file path.
	DatabaseURL string `toml:"database_url"`
	// DataDir holds local blobs when S3 is not configured.
	DataDir string `toml:"data_dir"`

	S3     S3Config     `toml:"s3"`
	Valkey ValkeyConfig `toml:"valkey"`

	// RateLimitPerMinute caps render and upload requests per client; 0
	// disables limiting.
	RateLimitPerMinute int `toml:"rate_limit_per_minute"`

	Fonts FontConfig `toml:"fonts"`
	Log   LogConfig  `toml:"log"`
}

// S3Config holds S3-compatible object storage settings. Storage stays
// local unless the endpoint, both keys and the bucket are all set.
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	Prefix    string `toml:"prefix"`
}

// ValkeyConfig holds the Valkey connection used for shared rate limits.
// An empty Host keeps limits in process memory.
type ValkeyConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Password string `toml:"password"`
}

// FontConfig names preferred caption typefaces (TTF, OTF or WOFF2).
type FontConfig struct {
	Regular string `toml:"regular"`
	Bold    string `toml:"bold"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level     string `toml:"level"`  // debug, info, warn, error
	Format    string `toml:"format"` // text, json
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

// Default returns the development configuration.
func Default() *Config {
	return &Config{
		Host:               "0.0.0.0",
		Port:               "8080",
		Env:                "development",
		DatabaseURL:        "data/kachel.db",
		DataDir:            "data",
		S3:                 S3Config{Region: "us-east-1"},
		Valkey:             ValkeyConfig{Port: "6379"},
		RateLimitPerMinute: 60,
		Fonts:              FontConfig{Regular: defaultRegularFont, Bold: defaultBoldFont},
		Log: LogConfig{
			Level:     "info",
			Format:    "text",
			MaxSizeMB: 10,
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file and
// the environment. Returns an error if values are invalid or critical
// values are missing in production mode.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("KACHEL_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields with the environment variables that are set.
func (c *Config) applyEnv() error {
	c.Host = envOrDefault("APP_HOST", c.Host)
	c.Port = envOrDefault("APP_PORT", c.Port)
	c.Env = envOrDefault("APP_ENV", c.Env)
	c.PublicURL = envOrDefault("PUBLIC_URL", c.PublicURL)

	c.DatabaseURL = envOrDefault("DATABASE_URL", c.DatabaseURL)
	c.DataDir = envOrDefault("DATA_DIR", c.DataDir)

	c.S3.Endpoint = envOrDefault("S3_ENDPOINT", c.S3.Endpoint)
	c.S3.Region = envOrDefault("S3_REGION", c.S3.Region)
	c.S3.AccessKey = envOrDefault("S3_ACCESS_KEY", c.S3.AccessKey)
	c.S3.SecretKey = envOrDefault("S3_SECRET_KEY", c.S3.SecretKey)
	c.S3.Bucket = envOrDefault("S3_BUCKET", c.S3.Bucket)
	c.S3.Prefix = envOrDefault("S3_PREFIX", c.S3.Prefix)

	c.Valkey.Host = envOrDefault("VALKEY_HOST", c.Valkey.Host)
	c.Valkey.Port = envOrDefault("VALKEY_PORT", c.Valkey.Port)
	c.Valkey.Password = envOrDefault("VALKEY_PASSWORD", c.Valkey.Password)

	c.Fonts.Regular = envOrDefault("FONT_REGULAR", c.Fonts.Regular)
	c.Fonts.Bold = envOrDefault("FONT_BOLD", c.Fonts.Bold)

	c.Log.Level = envOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOrDefault("LOG_FORMAT", c.Log.Format)
	c.Log.File = envOrDefault("LOG_FILE", c.Log.File)

	var err error
	if c.RateLimitPerMinute, err = envIntOrDefault("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute); err != nil {
		return err
	}
	if c.Log.MaxSizeMB, err = envIntOrDefault("LOG_MAX_SIZE_MB", c.Log.MaxSizeMB); err != nil {
		return err
	}
	return nil
}

// Validate checks value ranges and the production requirements.
func (c *Config) Validate() error {
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if c.Env == "production" {
		if c.UsesPostgres() && databasePassword(c.DatabaseURL) == defaultPassword {
			return fmt.Errorf("DATABASE_URL must not use the default password in production")
		}
	}
	return nil
}

// UsesPostgres reports whether DatabaseURL names a PostgreSQL server.
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// S3Enabled reports whether object storage is configured.
func (c *Config) S3Enabled() bool {
	return c.S3.Endpoint != "" && c.S3.AccessKey != "" && c.S3.SecretKey != "" && c.S3.Bucket != ""
}

// ValkeyEnabled reports whether rate limits are shared through Valkey.
func (c *Config) ValkeyEnabled() bool {
	return c.Valkey.Host != ""
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// databasePassword extracts the password of a DSN, empty when it has none.
func databasePassword(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return ""
	}
	pw, _ := u.User.Password()
	return pw
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envIntOrDefault reads an integer environment variable.
func envIntOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
