package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperfeed/internal/ledger"
	"github.com/pdiddy/paperfeed/internal/pipeline"
	"github.com/pdiddy/paperfeed/internal/upload"
	"github.com/pdiddy/paperfeed/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Split consume-folder PDFs into pages and upload them",
	Long: `Run executes the full pipeline: every PDF in the consume folder is
split into single-page files in the output folder, then each page is
POSTed to the document API. Files are processed in name order; a file
or page that fails is reported and the run continues.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	runCmd.Flags().Bool("scan-rename", false, "rename page files to NN_Xerox_Scan_<date>.pdf before upload")
	runCmd.Flags().Bool("no-upload", false, "split only, skip the upload stage")
	runCmd.Flags().Bool("no-history", false, "skip recording the run in the history ledger")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	folders, err := folderConfig()
	if err != nil {
		return err
	}

	noUpload, _ := cmd.Flags().GetBool("no-upload")
	scanRename, _ := cmd.Flags().GetBool("scan-rename")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	cfg := types.PipelineConfig{
		Folders:    folders,
		ScanRename: scanRename,
		Upload:     !noUpload,
	}

	var client *upload.Client
	if cfg.Upload {
		api, err := apiConfig(cmd)
		if err != nil {
			return err
		}
		cfg.API = api
		client = upload.New(api)

		// Probe connectivity before touching any files.
		if err := client.TestConnection(cmd.Context()); err != nil {
			return err
		}
	}

	var store *ledger.Store
	if !noHistory {
		store, err = ledger.Open(folders.OutputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: history ledger unavailable: %v\n", err)
		} else {
			defer store.Close()
		}
	}

	runner := pipeline.NewRunner(cfg, client, store, debugWriter())
	result, err := runner.Run(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) and %d page upload(s) failed", result.Failed, result.PagesFailed)
	}
	return nil
}
