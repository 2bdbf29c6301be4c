package commands

import (
	"context"

	"coursecatalog-backend/pkg/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

// crawlAndIngest is a full refresh: the catalog is crawled, written out, then ingested.
func crawlAndIngest(ctx context.Context, cfg Config) error {
	result, err := crawl(ctx, cfg, nil)
	if err != nil {
		return err
	}
	renderCrawlStats(result.Stats)

	summary, err := ingestRecords(ctx, cfg, result.Courses)
	if err != nil {
		return err
	}
	renderIngestSummary(summary)
	return nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Crawls the catalog and ingests the result in one go.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := crawlAndIngest(cmd.Context(), config)
		if err != nil {
			serviceutil.Fatal("failed to refresh catalog", err)
		}
	},
}
