package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"radarrtagger/internal/dump"
	"radarrtagger/internal/logging"
)

func newDumpCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Write the raw movie list to the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.consoleLogger()
			if err != nil {
				return err
			}
			client, err := ctx.radarrClient(cfg, logger)
			if err != nil {
				return err
			}
			movies, err := client.ListMovies(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.testMode() && len(movies) > cfg.Workflow.TestLimit {
				movies = movies[:cfg.Workflow.TestLimit]
			}

			path, err := dump.Write(cfg.Paths.OutputDir, cfg.Dump.Format, movies)
			if err != nil {
				return err
			}
			logger.Info("saved raw movie data", logging.String("path", path), logging.Int("movies", len(movies)))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d movies to %s\n", len(movies), path)
			return nil
		},
	}
}
