package commands

import (
	"coursecatalog-backend/internal/coursefile"
	"coursecatalog-backend/pkg/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [--output <path/to/courses.json>] [--db <path/to/courses.db>]",
	Short: "Ingests a JSON file written by crawl into the database, courses that already exist are skipped.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		records, err := coursefile.Read(config.Output)
		if err != nil {
			serviceutil.Fatal("failed to read courses", err)
		}
		summary, err := ingestRecords(cmd.Context(), config, records)
		if err != nil {
			serviceutil.Fatal("failed to ingest courses", err)
		}
		renderIngestSummary(summary)
	},
}
