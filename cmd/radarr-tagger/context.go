package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"radarrtagger/internal/config"
	"radarrtagger/internal/logging"
	"radarrtagger/internal/radarr"
	"radarrtagger/internal/reconcile"
)

type commandFlags struct {
	config    string
	test      bool
	logLevel  string
	logFormat string
	format    string
}

type commandContext struct {
	flags *commandFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *commandFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.flags != nil {
			path = strings.TrimSpace(c.flags.config)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags != nil {
			overrides := config.Overrides{
				LogLevel:   c.flags.logLevel,
				LogFormat:  c.flags.logFormat,
				DumpFormat: c.flags.format,
			}
			if err := cfg.ApplyOverrides(overrides); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// daemonLogger writes to stdout and the rotating log file.
func (c *commandContext) daemonLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

// consoleLogger writes to stderr only so command output stays clean.
func (c *commandContext) consoleLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func (c *commandContext) radarrClient(cfg *config.Config, logger *slog.Logger) (*radarr.Client, error) {
	return radarr.New(cfg.Radarr.URL, cfg.Radarr.APIKey,
		radarr.WithTimeout(cfg.RadarrTimeout()),
		radarr.WithLogger(logger),
	)
}

func (c *commandContext) reconcileOptions(cfg *config.Config, dryRun bool) reconcile.Options {
	opts := reconcile.Options{
		ScoreThreshold: cfg.Tagging.ScoreThreshold,
		DryRun:         dryRun,
	}
	if c.flags != nil && c.flags.test {
		opts.Limit = cfg.Workflow.TestLimit
	}
	return opts
}

func (c *commandContext) testMode() bool {
	return c.flags != nil && c.flags.test
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, unix.SIGINT, unix.SIGTERM)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
