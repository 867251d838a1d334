// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	c, err := FromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Database.Type != "auto" {
		t.Errorf("expected database.type auto, got %q", c.Database.Type)
	}
	if c.Database.DSN != "./data/quoteboard.db" {
		t.Errorf("unexpected default DSN %q", c.Database.DSN)
	}
	if c.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", c.Server.Port)
	}
	if c.Auth.JWTSecret != DefaultJWTSecret {
		t.Errorf("expected development JWT secret default")
	}
	if c.Auth.TokenTTL != "24h" {
		t.Errorf("expected default token TTL 24h, got %q", c.Auth.TokenTTL)
	}
	if c.Pagination.DefaultSize != 10 || c.Pagination.MaxSize != 50 {
		t.Errorf("unexpected pagination defaults: %+v", c.Pagination)
	}
	if c.Language != "en" {
		t.Errorf("expected default language en, got %q", c.Language)
	}
}

func TestFromViper_OverridesDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("database.type", "postgres")
	v.Set("database.dsn", "postgres://u:p@localhost/board")
	v.Set("server.port", 9090)
	v.Set("auth.token_ttl", "0")
	v.Set("language", "zh")

	c, err := FromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Database.Type != "postgres" || c.Server.Port != 9090 || c.Language != "zh" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.Auth.TokenTTL != "0" {
		t.Fatalf("expected token TTL override, got %q", c.Auth.TokenTTL)
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	c, err := FromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Server.Port = 9999

	path := filepath.Join(t.TempDir(), "nested", "quoteboard.yaml")
	if err := WriteConfigFile(c, path); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	// The written file must be readable back through viper.
	rv := viper.New()
	rv.SetConfigFile(path)
	if err := rv.ReadInConfig(); err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	if rv.GetInt("server.port") != 9999 {
		t.Fatalf("expected port 9999 after round trip, got %d", rv.GetInt("server.port"))
	}
}
