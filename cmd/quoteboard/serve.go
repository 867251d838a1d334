// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toeirei/quoteboard/internal/config"
	"github.com/toeirei/quoteboard/internal/credential"
	"github.com/toeirei/quoteboard/internal/db"
	"github.com/toeirei/quoteboard/internal/httpapi"
	"github.com/toeirei/quoteboard/internal/logging"
	"github.com/toeirei/quoteboard/internal/quote"
	"github.com/toeirei/quoteboard/internal/token"
)

// serveCmd represents the 'serve' command. It is also what the bare root
// command runs, so `quoteboard` and `quoteboard serve` are equivalent.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Quoteboard HTTP server",
	Long: `Starts the HTTP API on the configured port. The server seeds an empty
board with a starter set of quotes on first run and shuts down cleanly
on SIGINT/SIGTERM, draining in-flight requests first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ttl, err := time.ParseDuration(cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("invalid auth.token_ttl %q: %w", cfg.Auth.TokenTTL, err)
	}
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logging.Warnf("auth.jwt_secret is the built-in development key; set a real secret before exposing this server")
	}

	store := db.DefaultStore()

	// An empty board greets nobody. First run gets the starter set.
	seeded, err := db.SeedDefaultQuotes(cmd.Context(), store)
	if err != nil {
		return fmt.Errorf("failed to seed quotes: %w", err)
	}
	if seeded > 0 {
		logging.Infof("seeded %d starter quotes into an empty board", seeded)
	}

	dbType := cfg.Database.Type
	if dbType == "auto" || dbType == "" {
		dbType = db.DetectDBType(cfg.Database.DSN)
	}

	server := httpapi.New(
		credential.NewService(store),
		token.NewService(cfg.Auth.JWTSecret, ttl),
		quote.NewRepository(store, quote.Bounds{
			DefaultSize: cfg.Pagination.DefaultSize,
			MaxSize:     cfg.Pagination.MaxSize,
		}),
		httpapi.Options{
			Port:        cfg.Server.Port,
			CORSOrigins: cfg.Server.CORSOrigins,
			DBType:      dbType,
			Debug:       cfg.Debug,
		},
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logging.Infof("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := store.Close(); err != nil {
		logging.Warnf("closing store: %v", err)
	}
	return nil
}
