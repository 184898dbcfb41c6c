package main

import (
	"log/slog"
	"os"

	"github.com/ilham-ap/parex/internal/cli"
	"github.com/ilham-ap/parex/internal/util"
)

func main() {
	// First SIGINT/SIGTERM cancels the run, a second one exits
	ctx := util.SetupSignalHandler()

	if err := cli.Execute(ctx); err != nil {
		slog.Error("parex failed", "error", err)
		os.Exit(1)
	}
}
