// Package config loads and validates module configuration from defaults,
// an optional YAML file, and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Query    QueryConfig    `mapstructure:"query"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig configures the relational store connection.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
}

// QueryConfig configures query engine defaults.
type QueryConfig struct {
	// DefaultPageSize applies when a paginated request omits page_size.
	DefaultPageSize int64 `mapstructure:"default_page_size"`
	// MaxPageSize caps page_size at validation time; 0 means unbounded.
	MaxPageSize int64 `mapstructure:"max_page_size"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
			QueryTimeout:    30 * time.Second,
		},
		Query: QueryConfig{
			DefaultPageSize: 10,
			MaxPageSize:     0,
		},
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format %q is not one of json, text", c.Logging.Format)
	}

	switch strings.ToLower(c.Database.Driver) {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("database.driver %q is not one of postgres, mysql, sqlite", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database pool sizes must not be negative")
	}

	if c.Query.DefaultPageSize <= 0 {
		return fmt.Errorf("query.default_page_size must be positive, got %d", c.Query.DefaultPageSize)
	}
	if c.Query.MaxPageSize < 0 {
		return fmt.Errorf("query.max_page_size must not be negative, got %d", c.Query.MaxPageSize)
	}
	if c.Query.MaxPageSize > 0 && c.Query.DefaultPageSize > c.Query.MaxPageSize {
		return fmt.Errorf("query.default_page_size %d exceeds query.max_page_size %d",
			c.Query.DefaultPageSize, c.Query.MaxPageSize)
	}

	return nil
}
