package util

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// shutdownSignals are the signals that interrupt a run
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// SetupSignalHandler returns a context cancelled on the first SIGINT or
// SIGTERM. Cancellation interrupts in-flight commands through their
// contexts; queued tasks are left for the executor to discard. A second
// signal skips the graceful path and exits immediately.
func SetupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, shutdownSignals...)

	go func() {
		sig := <-sigCh
		slog.Info("interrupting run", "signal", sig.String())
		cancel()

		sig = <-sigCh
		slog.Warn("second signal, exiting immediately", "signal", sig.String())
		os.Exit(1)
	}()

	return ctx
}
