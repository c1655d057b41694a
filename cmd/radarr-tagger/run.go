package main

import (
	"context"
	"fmt"

	"radarrtagger/internal/daemon"
	"radarrtagger/internal/logging"
	"radarrtagger/internal/notifications"
	"radarrtagger/internal/reconcile"
)

func runDaemon(cmdCtx context.Context, ctx *commandContext) error {
	if ctx == nil {
		return fmt.Errorf("command context is required")
	}

	signalCtx, cancel := signalContext(cmdCtx)
	defer cancel()

	cfg, logger, err := ctx.daemonLogger()
	if err != nil {
		return err
	}
	logger.Info("starting Radarr Tag Updater", logging.String("version", Version))

	client, err := ctx.radarrClient(cfg, logger)
	if err != nil {
		return err
	}
	opts := ctx.reconcileOptions(cfg, false)
	if ctx.testMode() {
		logger.Info("test mode: processing first movies only", logging.Int("limit", opts.Limit))
	}

	reconciler := reconcile.New(client, opts, logger)
	d, err := daemon.New(cfg, reconciler, notifications.NewService(cfg), logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	return d.Run(signalCtx)
}
