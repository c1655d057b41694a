package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"radarrtagger/internal/radarr"
	"radarrtagger/internal/tagging"
)

func newTagsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List Radarr tags and show which well-known tags are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.consoleLogger()
			if err != nil {
				return err
			}
			client, err := ctx.radarrClient(cfg, logger)
			if err != nil {
				return err
			}
			tags, err := client.ListTags(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTags(tags))
			missing := missingWellKnown(tags)
			if len(missing) > 0 {
				fmt.Fprintf(out, "Missing well-known tags (created on next cycle): %v\n", missing)
			}
			return nil
		},
	}
}

func renderTags(tags []radarr.Tag) string {
	sorted := append([]radarr.Tag(nil), tags...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	rows := make([][]string, 0, len(sorted))
	for _, tag := range sorted {
		rows = append(rows, []string{
			strconv.FormatInt(tag.ID, 10),
			tag.Label,
			yesNo(tagging.IsWellKnown(tag.Label)),
		})
	}
	return renderTable([]tableColumn{numericCol("ID"), col("Label"), col("Managed")}, rows, false)
}

func missingWellKnown(tags []radarr.Tag) []string {
	present := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		present[tag.Label] = struct{}{}
	}
	var missing []string
	for _, def := range tagging.WellKnown() {
		if _, ok := present[def.Label]; !ok {
			missing = append(missing, def.Label)
		}
	}
	return missing
}
