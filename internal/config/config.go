package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	JWT      JWTConfig
	AMQP     AMQPConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envDefault:"8080"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            int    `env:"DB_PORT" envDefault:"5432"`
	User            string `env:"DB_USER" envDefault:"postgres"`
	Password        string `env:"DB_PASSWORD" envDefault:""`
	Database        string `env:"DB_NAME" envDefault:"storefront"`
	MaxConnections  int    `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	MinConnections  int    `env:"DB_MIN_CONNECTIONS" envDefault:"5"`
	MaxConnLifetime int    `env:"DB_MAX_CONN_LIFETIME" envDefault:"300"` // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "console"
}

// JWTConfig holds signed-token configuration. Tokens are valid for 12 hours
// by default.
type JWTConfig struct {
	Secret      string `env:"JWT_SECRET"`
	ExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"12"`
}

// AMQPConfig holds the optional order-event broker configuration. An empty
// URL disables event publishing entirely.
type AMQPConfig struct {
	URL      string `env:"AMQP_URL" envDefault:""`
	Exchange string `env:"AMQP_ORDER_EXCHANGE" envDefault:"orders"`
	Queue    string `env:"AMQP_ORDER_QUEUE" envDefault:"orders.placed"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.JWT.ExpiryHours < 1 {
		return fmt.Errorf("JWT expiry must be at least one hour")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether event publishing is configured.
func (c *AMQPConfig) Enabled() bool {
	return c.URL != ""
}
