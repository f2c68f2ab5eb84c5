// Package main provides the slashsum CLI that computes several
// checksums of one file in a single read pass.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/byte4ever/slashsum/config"
	"github.com/byte4ever/slashsum/logging"
	"github.com/byte4ever/slashsum/slashsum"
)

func run() error {
	const errCtx = "slashsum"

	args := os.Args[1:]

	// A broken config must not hide help or version.
	settings, cfgPath, err := config.Discover()
	if err != nil && !slashsum.InfoRequested(args) {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	logger := logging.New(os.Stderr, settings.LogLevel)

	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
	if err != nil {
		logger.Warn("setting GOMAXPROCS", "err", err)
	}

	defer undo()

	if cfgPath != "" {
		logger.Debug("loaded config", "path", cfgPath)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	return slashsum.New(settings, os.Stdout, logger).Run(ctx, args)
}

func main() {
	if err := run(); err != nil {
		slashsum.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
