package main

import (
	"github.com/spf13/cobra"
)

// Version is the release reported by --version.
const Version = "1.0.0"

func newRootCommand() *cobra.Command {
	var flags commandFlags
	ctx := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:           "radarr-tagger",
		Short:         "Tag Radarr movies by custom format score, release group, and resolution",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), ctx)
		},
	}
	rootCmd.SetVersionTemplate("Radarr Tag Updater v{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.BoolVar(&flags.test, "test", false, "Process only the first movies of the library (see workflow.test_limit)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Override log format (console, json)")
	pf.StringVar(&flags.format, "format", "", "Override dump output format (json, csv)")

	rootCmd.AddCommand(newOnceCommand(ctx))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newTagsCommand(ctx))
	rootCmd.AddCommand(newDumpCommand(ctx))
	rootCmd.AddCommand(newTestNotifyCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
