// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-search CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-search/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the scholar-search CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-search",
	Short: "Search Semantic Scholar from the command line",
	Long: `scholar-search queries the Semantic Scholar Graph API. It supports simple
keyword search, bulk search with boolean query syntax and filters, paper
lookup by ID and recommendations.

Each command is one action against a named session. The results of the last
successful action are kept in the session database, so "next", "page" and
"export" work on what the previous command found. A failed action leaves the
session untouched.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-search.yaml or ~/.config/scholar-search/scholar-search.yaml)")
	rootCmd.PersistentFlags().String("session", "", "session name (default \"default\")")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")

	viper.BindPFlag("session.name", rootCmd.PersistentFlags().Lookup("session"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// .env values become environment variables; real environment wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(config.Name)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", config.Name))
		}
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
