// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperfeed CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperfeed/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the paperfeed CLI.
var rootCmd = &cobra.Command{
	Use:   "paperfeed",
	Short: "Split scanned PDFs into pages and feed them to a document API",
	Long: `paperfeed watches a consume folder for multi-page PDFs, splits each
one into single-page files, and submits every page to a Paperless-NGX
compatible document API.

Each stage is a subcommand: run executes the full split-and-upload
pipeline, upload resends whatever is in the output folder, test-api
checks connectivity, and history reports past runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environment variables win either way.
		if err := godotenv.Load(); err == nil {
			fmt.Fprintln(os.Stderr, "Loaded environment from .env")
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperfeed.yaml or ~/.config/paperfeed/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable detailed progress output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperfeed")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperfeed"))
		}
	}

	viper.SetEnvPrefix("PAPERFEED")
	viper.AutomaticEnv()

	// The documented environment contract uses unprefixed names.
	viper.BindEnv("api_base_url", "API_BASE_URL")
	viper.BindEnv("api_token", "API_TOKEN")
	viper.BindEnv("consume_folder", "CONSUME_FOLDER")
	viper.BindEnv("output_folder", "OUTPUT_FOLDER")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
