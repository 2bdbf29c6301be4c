package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext returns a context that is cancelled on the first SIGINT or SIGTERM,
// a second signal exits immediately.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		slog.Info("shutting down", "signal", sig.String())
		cancel()

		<-sigs
		os.Exit(130)
	}()

	return ctx
}

// Fatal logs `message` with `err` and exits, it is only meant for use in main packages.
func Fatal(message string, err error) {
	if err != nil {
		slog.Error(message, "err", err.Error())
	} else {
		slog.Error(message)
	}
	os.Exit(1)
}
