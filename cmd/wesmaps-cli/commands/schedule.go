package commands

import (
	"context"
	"log/slog"
	"time"

	"coursecatalog-backend/internal/components/chrono"
	"coursecatalog-backend/internal/components/telemetry"
	"coursecatalog-backend/pkg/serviceutil"

	"github.com/spf13/cobra"
)

const report_schedule_run = "schedule.run"

var scheduleNow *bool

func init() {
	scheduleNow = scheduleCmd.Flags().Bool("now", false, "Also run once immediately instead of waiting for the first tick.")
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [--now]",
	Short: "Keeps running and refreshes the catalog on the configured cron schedule.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		telemetry.InstrumentPerfStats(ctx, tel)

		location, err := chrono.LoadLocation(config.Timezone)
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}
		cronner := chrono.NewStandardCron(tel, location)

		job := func() {
			err := crawlAndIngest(ctx, config)
			if err != nil {
				tel.ReportBroken(report_schedule_run, err)
				return
			}
			slog.Info("next refresh", "at", cronner.Next().Format(time.DateTime))
		}

		slog.Info("scheduling refresh", "schedule", config.Schedule, "now", *scheduleNow)
		if *scheduleNow {
			err = cronner.CronNow(config.Schedule, job)
		} else {
			err = cronner.Cron(config.Schedule, job)
		}
		if err != nil {
			serviceutil.Fatal("failed to parse schedule", err)
		}
		slog.Info("scheduled refresh", "next", cronner.Next().Format(time.DateTime))

		<-ctx.Done()
		slog.Info("stopping scheduler")

		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err = cronner.Stop(stopCtx)
		if err != nil {
			slog.Warn("a refresh did not stop in time", "err", err)
		}
	},
}
