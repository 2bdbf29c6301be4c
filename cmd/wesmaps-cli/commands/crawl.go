package commands

import (
	"coursecatalog-backend/pkg/serviceutil"

	"github.com/spf13/cobra"
)

var crawlCategories *[]string

func init() {
	crawlCategories = crawlCmd.Flags().StringSlice("category", nil, "Only crawl the categories with these names, ex. --category Biology,History.")
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [--category <name>] [--output <path/to/courses.json>]",
	Short: "Crawls the catalog and writes every course found to a JSON file.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		result, err := crawl(cmd.Context(), config, *crawlCategories)
		if err != nil {
			serviceutil.Fatal("failed to crawl catalog", err)
		}
		renderCrawlStats(result.Stats)
	},
}
