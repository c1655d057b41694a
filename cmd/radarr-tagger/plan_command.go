package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"radarrtagger/internal/reconcile"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show tag changes without updating Radarr",
		Long: "Run a dry-run cycle and list the movies whose tags would change. " +
			"Missing well-known tags are still created so the plan reflects real identifiers.",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signalContext(cmd.Context())
			defer cancel()

			cfg, logger, err := ctx.consoleLogger()
			if err != nil {
				return err
			}
			client, err := ctx.radarrClient(cfg, logger)
			if err != nil {
				return err
			}

			result, err := reconcile.New(client, ctx.reconcileOptions(cfg, true), logger).RunCycle(signalCtx)
			if err != nil {
				return fmt.Errorf("plan: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(result.Changes) == 0 {
				fmt.Fprintf(out, "All %d movies are up to date\n", result.Movies)
				return nil
			}
			fmt.Fprintln(out, renderPlan(result, shouldColorize(out)))
			fmt.Fprintf(out, "%d of %d movies would change\n", result.Changed, result.Movies)
			return nil
		},
	}
}

func renderPlan(result reconcile.Result, colorize bool) string {
	rows := make([][]string, 0, len(result.Changes))
	for _, change := range result.Changes {
		score := "-"
		if change.Score != nil {
			score = strconv.Itoa(*change.Score)
		}
		if change.FileError {
			score = "unavailable"
		}
		rows = append(rows, []string{
			strconv.FormatInt(change.MovieID, 10),
			change.Title,
			score,
			labelList(change.Added, "+"),
			labelList(change.Removed, "-"),
			strings.Join(change.After, ", "),
		})
	}
	columns := []tableColumn{
		numericCol("ID"),
		col("Title"),
		numericCol("Score"),
		col("Add").colored(text.FgGreen),
		col("Remove").colored(text.FgRed),
		col("Resulting Tags"),
	}
	return renderTable(columns, rows, colorize)
}
