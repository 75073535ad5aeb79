package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperfeed/internal/upload"
)

var testAPICmd = &cobra.Command{
	Use:   "test-api",
	Short: "Check connectivity to the document API",
	Long: `Test-api issues an authenticated GET against the configured API base
URL and reports whether the endpoint answers 200.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiConfig(cmd)
		if err != nil {
			return err
		}

		client := upload.New(api)
		if err := client.TestConnection(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("API connection successful.")
		return nil
	},
}

func init() {
	testAPICmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(testAPICmd)
}
