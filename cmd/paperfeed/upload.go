package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperfeed/internal/upload"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the files already in the output folder",
	Long: `Upload submits every file currently in the output folder to the
document API without splitting anything first. Useful after a run whose
uploads partially failed: split pages stay in the output folder and can
be resent.`,
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	folders, err := folderConfig()
	if err != nil {
		return err
	}
	api, err := apiConfig(cmd)
	if err != nil {
		return err
	}

	client := upload.New(api)
	if err := client.TestConnection(cmd.Context()); err != nil {
		return err
	}

	result, err := client.UploadDir(cmd.Context(), folders.OutputDir, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to upload", result.Failed)
	}
	return nil
}
