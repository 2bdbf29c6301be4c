package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"coursecatalog-backend/internal/components/db"
	"coursecatalog-backend/internal/coursefile"
	"coursecatalog-backend/internal/ingest"
	"coursecatalog-backend/internal/scrapers/wesmaps"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// crawl scrapes the catalog and replaces the output file with the result.
func crawl(ctx context.Context, cfg Config, categories []string) (wesmaps.CrawlResult, error) {
	scraper, err := wesmaps.NewScraper(cfg.scraperOptions(categories), tel)
	if err != nil {
		return wesmaps.CrawlResult{}, fmt.Errorf("create scraper: %w", err)
	}

	t1 := time.Now()
	result, err := scraper.Crawl(ctx)
	if err != nil {
		return wesmaps.CrawlResult{}, err
	}
	t2 := time.Now()

	err = coursefile.Write(cfg.Output, result.Courses)
	if err != nil {
		return wesmaps.CrawlResult{}, fmt.Errorf("write %s: %w", cfg.Output, err)
	}

	slog.Info(
		"crawl finished",
		"courses", len(result.Courses),
		"output", cfg.Output,
		"seconds", t2.Sub(t1).Seconds(),
	)
	return result, nil
}

// ingestRecords merges records into the configured database.
func ingestRecords(ctx context.Context, cfg Config, records []wesmaps.CourseRecord) (ingest.Summary, error) {
	sqlDB, err := cfg.Database.OpenDB(ctx, db.Schema)
	if err != nil {
		return ingest.Summary{}, fmt.Errorf("open db: %w", err)
	}
	defer sqlDB.Close()

	reconciler := ingest.NewReconciler(db.NewMakeTx(sqlDB), tel)
	summary, err := reconciler.Ingest(ctx, records)
	if err != nil {
		return summary, err
	}

	slog.Info(
		"ingest finished",
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}

func renderCrawlStats(stats wesmaps.CrawlStats) {
	t := newTable()
	t.SetTitle("Crawl")
	t.AppendHeader(table.Row{"Categories", "Skipped", "Listed", "Dropped (fetch)", "Dropped (section)", "Total Courses Scraped"})
	t.AppendRow(table.Row{
		stats.Categories,
		stats.SkippedCategories,
		stats.Links,
		stats.DroppedFetch,
		stats.DroppedSection,
		stats.Courses,
	})
	t.Render()
}

func renderIngestSummary(summary ingest.Summary) {
	t := newTable()
	t.SetTitle("Ingest")
	t.AppendHeader(table.Row{"Inserted", "Skipped", "Failed", "New professors", "Links"})
	t.AppendRow(table.Row{
		summary.Inserted,
		summary.Skipped,
		summary.Failed,
		summary.ProfessorsCreated,
		summary.Links,
	})
	t.Render()
}
