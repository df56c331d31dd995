package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cue-cards/internal/cli"
	"cue-cards/internal/config"
)

func main() {
	// Defaults, then CC_CONFIG, then CC_* environment variables.
	// Flags are applied by the root command.
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// serve runs until interrupted; other commands add their own timeout
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(cli.ExitCode(err))
	}
}
