package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"radarrtagger/internal/daemon"
	"radarrtagger/internal/logging"
	"radarrtagger/internal/notifications"
	"radarrtagger/internal/reconcile"
)

func newOnceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Run a single tag update cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signalContext(cmd.Context())
			defer cancel()

			cfg, logger, err := ctx.daemonLogger()
			if err != nil {
				return err
			}
			client, err := ctx.radarrClient(cfg, logger)
			if err != nil {
				return err
			}
			opts := ctx.reconcileOptions(cfg, false)
			if ctx.testMode() {
				logger.Info("test mode: processing first movies only", logging.Int("limit", opts.Limit))
			}

			d, err := daemon.New(cfg, reconcile.New(client, opts, logger), notifications.NewService(cfg), logger)
			if err != nil {
				return fmt.Errorf("create daemon: %w", err)
			}
			result, err := d.RunCycle(signalCtx)
			if err != nil {
				return fmt.Errorf("tag update cycle: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Processed %d movies: %d updated, %d rejected, %d file errors\n",
				result.Movies, result.Updated, result.UpdateFailures, result.FileErrors)
			return nil
		},
	}
}
