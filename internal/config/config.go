// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

// package config defines the process-wide configuration for Quoteboard.
// The configuration is resolved once at startup, in viper's usual
// file/environment/flag precedence, into a Config value that is passed
// explicitly into each component.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is the documented, insecure development signing key.
// Any deployment that is reachable by anyone but its own developer must
// override it via configuration.
const DefaultJWTSecret = "dev_jwt_secret_key_change_in_production"

// Config is the process-wide configuration. It is constructed once at
// startup and never mutated afterwards.
type Config struct {
	Database   DatabaseConfig   `yaml:"database" mapstructure:"database"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Auth       AuthConfig       `yaml:"auth" mapstructure:"auth"`
	Pagination PaginationConfig `yaml:"pagination" mapstructure:"pagination"`
	Language   string           `yaml:"language" mapstructure:"language"`
	Debug      bool             `yaml:"debug" mapstructure:"debug"`
}

// DatabaseConfig selects the storage backend. Type may be "sqlite",
// "postgres", "mysql" or "auto"; with "auto" the backend is inferred from
// the shape of the DSN.
type DatabaseConfig struct {
	Type string `yaml:"type" mapstructure:"type"`
	DSN  string `yaml:"dsn" mapstructure:"dsn"`
}

// ServerConfig covers the HTTP listener.
type ServerConfig struct {
	Port        int    `yaml:"port" mapstructure:"port"`
	CORSOrigins string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// AuthConfig covers token signing. TokenTTL of zero issues tokens without
// an expiry claim; expiry is a property of the signing configuration, not
// of the token service itself.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	TokenTTL  string `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// PaginationConfig bounds quote listing pages.
type PaginationConfig struct {
	DefaultSize int `yaml:"default_size" mapstructure:"default_size"`
	MaxSize     int `yaml:"max_size" mapstructure:"max_size"`
}

// SetDefaults registers the default configuration values on a viper
// instance. These apply when neither config file, environment nor flags
// provide a value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.type", "auto")
	v.SetDefault("database.dsn", "./data/quoteboard.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("pagination.default_size", 10)
	v.SetDefault("pagination.max_size", 50)
	v.SetDefault("language", "en")
	v.SetDefault("debug", false)
}

// FromViper unmarshals the resolved viper state into a Config.
func FromViper(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return c, nil
}

// WriteConfigFile serializes a Config to YAML at the given path, creating
// parent directories as needed. Used to materialize a starter config on
// first run and when migrating between backends.
func WriteConfigFile(c Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o600)
}
