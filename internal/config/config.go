// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package config loads application configuration with Koanf v2 from
// layered sources: built-in defaults, an optional YAML file, and
// environment variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// ConfigPathEnvVar overrides the config file search paths.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order for a config file.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/commune/config.yaml",
}

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Mongo     MongoConfig     `koanf:"mongo"`
	Auth      AuthConfig      `koanf:"auth"`
	Security  SecurityConfig  `koanf:"security"`
	API       APIConfig       `koanf:"api"`
	Upload    UploadConfig    `koanf:"upload"`
	Websocket WebsocketConfig `koanf:"websocket"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MongoConfig holds document store connection settings.
type MongoConfig struct {
	URI            string        `koanf:"uri"`
	Database       string        `koanf:"database"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	PingTimeout    time.Duration `koanf:"ping_timeout"`
}

// AuthConfig holds token and password hashing settings.
type AuthConfig struct {
	// JWTSecret signs HS256 tokens. Must be at least 32 characters.
	JWTSecret string `koanf:"jwt_secret"`
	// TokenTTL is the token validity window.
	TokenTTL time.Duration `koanf:"token_ttl"`
	// BcryptCost is the password hashing cost factor.
	BcryptCost int `koanf:"bcrypt_cost"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins           []string      `koanf:"cors_origins"`
	RateLimitRequests     int           `koanf:"rate_limit_requests"`
	RateLimitWindow       time.Duration `koanf:"rate_limit_window"`
	AuthRateLimitRequests int           `koanf:"auth_rate_limit_requests"`
	RateLimitDisabled     bool          `koanf:"rate_limit_disabled"`
}

// APIConfig holds pagination defaults.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// UploadConfig holds file storage settings.
type UploadConfig struct {
	Dir          string `koanf:"dir"`
	BaseURL      string `koanf:"base_url"`
	MaxSizeBytes int64  `koanf:"max_size_bytes"`
}

// WebsocketConfig holds chat relay settings.
type WebsocketConfig struct {
	// MessageRate caps messages per second per connection.
	MessageRate float64 `koanf:"message_rate"`
	// MessageBurst is the per-connection burst allowance.
	MessageBurst int `koanf:"message_burst"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, the lowest config layer.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "commune",
			ConnectTimeout: 10 * time.Second,
			PingTimeout:    5 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:  "",
			TokenTTL:   720 * time.Hour,
			BcryptCost: 10,
		},
		Security: SecurityConfig{
			CORSOrigins:           []string{"*"},
			RateLimitRequests:     300,
			RateLimitWindow:       time.Minute,
			AuthRateLimitRequests: 20,
		},
		API: APIConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
		Upload: UploadConfig{
			Dir:          "/data/uploads",
			BaseURL:      "/uploads",
			MaxSizeBytes: 10 << 20,
		},
		Websocket: WebsocketConfig{
			MessageRate:  10,
			MessageBurst: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters, got %d", len(c.Auth.JWTSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}
	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("api.default_page_size must be between 1 and api.max_page_size")
	}
	if c.Websocket.MessageRate <= 0 {
		return fmt.Errorf("websocket.message_rate must be positive")
	}
	return nil
}
