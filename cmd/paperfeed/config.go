// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperfeed/internal/secrets"
	"github.com/pdiddy/paperfeed/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "paperfeed/0.1"
)

// apiConfig resolves the API endpoint settings from flags, config file,
// environment, and the .secrets/ token fallback, in that order.
func apiConfig(cmd *cobra.Command) (types.APIConfig, error) {
	baseURL := viper.GetString("api_base_url")
	if baseURL == "" {
		return types.APIConfig{}, fmt.Errorf("API_BASE_URL must be set")
	}

	token := viper.GetString("api_token")
	if token == "" {
		token = loadedSecrets[secrets.TokenKey]
	}
	if token == "" {
		return types.APIConfig{}, fmt.Errorf("API_TOKEN must be set (or provide .secrets/%s)", secrets.TokenKey)
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return types.APIConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		BaseURL: baseURL,
		Token:   token,
	}, nil
}

// folderConfig resolves the consume and output directories.
func folderConfig() (types.FolderConfig, error) {
	consume := viper.GetString("consume_folder")
	if consume == "" {
		return types.FolderConfig{}, fmt.Errorf("CONSUME_FOLDER must be set")
	}
	output := viper.GetString("output_folder")
	if output == "" {
		return types.FolderConfig{}, fmt.Errorf("OUTPUT_FOLDER must be set")
	}
	return types.FolderConfig{ConsumeDir: consume, OutputDir: output}, nil
}

// debugWriter returns the destination for verbose progress lines.
func debugWriter() io.Writer {
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		return os.Stderr
	}
	return io.Discard
}
