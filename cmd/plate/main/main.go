package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/plate/cmd/plate"
	"github.com/arthur-debert/plate/pkg/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	console := ui.NewConsole()
	rootCmd := plate.NewRootCmd(console)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		console.Failure(err)
		stop()
		os.Exit(1)
	}
	stop()
}
