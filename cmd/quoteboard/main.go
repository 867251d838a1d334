// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for the Quoteboard server
// using the Cobra library. It defines the root command, subcommands
// (serve, seed, backup, restore, migrate), flags, and the entry point.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toeirei/quoteboard/buildvars"
	"github.com/toeirei/quoteboard/internal/config"
	"github.com/toeirei/quoteboard/internal/db"
	"github.com/toeirei/quoteboard/internal/i18n"
	"github.com/toeirei/quoteboard/internal/logging"
)

var cfgFile string

// main is the entry point of the application.
func main() {
	if err := rootCmd.Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd = newRootCmd()

	// Set defaults in viper. These are used if not set in the config file or by flags.
	config.SetDefaults(viper.GetViper())
}

// newRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quoteboard",
		Short: "Quoteboard is a small shared quote board with user accounts.",
		Long: `Quoteboard serves a shared board of quotes over HTTP. Anyone may read
the board; adding a quote requires an account and a signed token.

The board lives in a single database chosen at startup: an embedded
SQLite file for zero-setup deployments, or PostgreSQL/MySQL when the
board is shared between instances.

Running without a subcommand starts the HTTP server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize the database for all commands.
			// Viper has already read the config by this point.
			logging.SetDebug(viper.GetBool("debug"))
			db.SetDebug(viper.GetBool("debug"))
			i18n.Init(viper.GetString("language"))
			dbType := viper.GetString("database.type")
			dsn := viper.GetString("database.dsn")
			if err := db.InitDB(dbType, dsn); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// The database is already initialized by PersistentPreRunE.
			return runServe(cmd)
		},
	}

	// Add subcommands to the newly created root command.
	cmd.AddCommand(serveCmd)
	cmd.AddCommand(seedCmd)
	cmd.AddCommand(backupCmd)
	cmd.AddCommand(restoreCmd)
	cmd.AddCommand(migrateCmd)

	// Set version
	cmd.Version = buildvars.VersionOrDefault("dev")

	// Define flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quoteboard.yaml or ./.quoteboard.yaml)")
	cmd.PersistentFlags().String("db-type", "auto", `Database type ("sqlite", "postgres", "mysql", or "auto" to infer from the DSN)`)
	cmd.PersistentFlags().String("db-dsn", "./data/quoteboard.db", "Database connection string (DSN)")
	cmd.PersistentFlags().Int("port", 8080, "HTTP listen port")
	cmd.PersistentFlags().String("lang", "en", `API message language ("en", "zh")`)

	// Bind flags to viper
	viper.BindPFlag("database.type", cmd.PersistentFlags().Lookup("db-type"))
	viper.BindPFlag("database.dsn", cmd.PersistentFlags().Lookup("db-dsn"))
	viper.BindPFlag("server.port", cmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("language", cmd.PersistentFlags().Lookup("lang"))

	return cmd
}

// initConfig reads in a configuration file and environment variables.
// It uses Viper to search for a config file (e.g., .quoteboard.yaml) in the
// home and current directories. If a config file is not found, it attempts to
// create a default one. It also binds environment variables prefixed with
// "QUOTEBOARD".
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory and current directory with name ".quoteboard" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".quoteboard")
	}

	viper.SetEnvPrefix("QUOTEBOARD")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		// If the config file is not found, we can create one with default values
		// to make configuration discoverable for the user.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			// We only do this if no config file was found and none was specified via flag.
			// If writing fails (e.g., due to permissions), we don't treat it as a
			// fatal error. The app will simply run with the default values set in memory.
			if err := writeStarterConfig(".quoteboard.yaml"); err == nil {
				fmt.Println("No config file found. Created a default '.quoteboard.yaml' in the current directory.")
			}
		}
	}
}

// writeStarterConfig materializes a config file populated from the
// registered defaults, so the values on disk always match what the
// process would run with anyway.
func writeStarterConfig(path string) error {
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	return config.WriteConfigFile(cfg, path)
}
