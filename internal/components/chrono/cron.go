package chrono

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"coursecatalog-backend/internal/components/telemetry"

	"github.com/robfig/cron/v3"
)

// CronAPI is the interface that anything depending on things to happen on a cron job should use.
type CronAPI interface {
	Cron(spec string, callback func()) error
}

// StandardCron is the standard implementation of CronAPI using `github.com/robfig/cron/v3`.
// A callback that is still running when its next tick comes is not started again.
type StandardCron struct {
	cron *cron.Cron
}

// LoadLocation resolves an IANA timezone name, an empty name is the local timezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// NewStandardCron is the constructor of StandardCron, schedules are interpreted in `location`.
func NewStandardCron(tel telemetry.API, location *time.Location) StandardCron {
	logger := cronLogger{tel: tel}
	cronner := cron.New(
		cron.WithLogger(logger),
		cron.WithLocation(location),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	cronner.Start()

	return StandardCron{
		cron: cronner,
	}
}

func (s StandardCron) Cron(spec string, callback func()) error {
	_, err := s.cron.AddFunc(spec, callback)
	return err
}

// CronNow is Cron but the callback also runs once right away on the calling goroutine.
// That run goes through the same chain as scheduled runs, so ticks that come while it
// is still going are skipped.
func (s StandardCron) CronNow(spec string, callback func()) error {
	id, err := s.cron.AddFunc(spec, callback)
	if err != nil {
		return err
	}
	s.cron.Entry(id).WrappedJob.Run()
	return nil
}

// Next returns the earliest time any registered job will run, zero if there are none.
func (s StandardCron) Next() time.Time {
	var next time.Time
	for _, entry := range s.cron.Entries() {
		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}
	return next
}

// Stop stops scheduling new runs and waits for running callbacks until `ctx` is done.
func (s StandardCron) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type cronLogger struct {
	tel telemetry.API
}

func (l cronLogger) formatParams(keysAndValues []any) []any {
	params := []any{}
	for i := 0; i < len(keysAndValues)/2; i++ {
		idx := i * 2
		params = append(params, telemetry.KV{
			Key:   fmt.Sprint(keysAndValues[idx]),
			Value: keysAndValues[idx+1],
		})
	}
	return params
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.tel.ReportDebug(
		fmt.Sprintf("cron: %s", msg),
		l.formatParams(keysAndValues)...,
	)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.tel.ReportBroken(
		"cron",
		append([]any{fmt.Errorf("%s: %w", msg, err)}, l.formatParams(keysAndValues)...)...,
	)
}
