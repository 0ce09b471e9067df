package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"wheelgen/internal/actions"
	"wheelgen/internal/config"
	"wheelgen/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:     "wheelgen",
		Usage:    "Turn a song sheet into the JSON file behind the song wheel.",
		Commands: actions.Commands(cfg, logger),
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}
