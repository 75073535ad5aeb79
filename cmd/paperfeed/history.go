package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperfeed/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Report documents processed by previous runs",
	Long: `History lists recent entries from the ledger in the output folder:
one line per source document plus the status of each page upload.
With --export the full history is written to a YAML or JSON file.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of documents to list")
	historyCmd.Flags().String("export", "", "export format: yaml or json")
	historyCmd.Flags().String("out", "", "export file path (default history.yaml / history.json)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	// Only the output folder matters here; the consume folder may be
	// unset on machines that just inspect history.
	outputDir := viper.GetString("output_folder")
	if outputDir == "" {
		return fmt.Errorf("OUTPUT_FOLDER must be set")
	}

	store, err := ledger.Open(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("export")
	if format != "" {
		out, _ := cmd.Flags().GetString("out")
		switch format {
		case "yaml":
			if out == "" {
				out = "history.yaml"
			}
			if err := store.ExportYAML(cmd.Context(), out); err != nil {
				return err
			}
		case "json":
			if out == "" {
				out = "history.json"
			}
			if err := store.ExportJSON(cmd.Context(), out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown export format %q (want yaml or json)", format)
		}
		fmt.Printf("Exported history to %s\n", out)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No history recorded yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %d pages  (%s)\n", rec.Name, rec.PageCount, rec.ProcessedAt)
		for _, u := range rec.Uploads {
			status := fmt.Sprintf("HTTP %d", u.StatusCode)
			if u.Err != "" {
				status = u.Err
			}
			fmt.Printf("  %s  %s\n", u.Filename, status)
		}
	}
	return nil
}
