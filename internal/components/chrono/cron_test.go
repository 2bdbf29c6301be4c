package chrono

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"coursecatalog-backend/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestStandardCron(t *testing.T) {
	tel := telemetry.NewRecorder()
	cronner := NewStandardCron(tel, time.UTC)
	defer cronner.Stop(context.Background())

	require.True(t, cronner.Next().IsZero())
	require.Error(t, cronner.Cron("not a schedule", func() {}))

	var runs atomic.Int64
	require.NoError(t, cronner.Cron("@every 1s", func() {
		runs.Add(1)
	}))
	require.False(t, cronner.Next().IsZero())

	require.Eventually(t, func() bool {
		return runs.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)
}

func TestCronLoggerError(t *testing.T) {
	tel := telemetry.NewRecorder()
	logger := cronLogger{tel: tel}
	logger.Error(errors.New("boom"), "panic", "job", "crawl")

	reports := tel.Reports("cron")
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Params, 2)
	require.Equal(t, telemetry.KV{Key: "job", Value: "crawl"}, reports[0].Params[1])
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)

	loc, err = LoadLocation("America/New_York")
	require.NoError(t, err)
	require.Equal(t, "America/New_York", loc.String())

	_, err = LoadLocation("Nowhere/Special")
	require.Error(t, err)
}

func TestCronNowSkipsOverlappingTicks(t *testing.T) {
	cronner := NewStandardCron(telemetry.NewRecorder(), time.UTC)
	defer cronner.Stop(context.Background())

	var runs, running, overlaps atomic.Int64
	err := cronner.CronNow("@every 1s", func() {
		if running.Add(1) > 1 {
			overlaps.Add(1)
		}
		defer running.Add(-1)
		runs.Add(1)
		time.Sleep(2500 * time.Millisecond)
	})
	require.NoError(t, err)

	// ticks at 1s and 2s fell inside the immediate run
	require.EqualValues(t, 1, runs.Load())
	require.Zero(t, overlaps.Load())

	require.Error(t, cronner.CronNow("not a schedule", func() {}))
}
