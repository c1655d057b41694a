package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRadarr(); err != nil {
		return err
	}
	if err := c.validateTagging(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateDump()
}

func (c *Config) validateRadarr() error {
	if c.Radarr.URL == "" {
		return fmt.Errorf("radarr.url is required. Set RADARR_URL env var or edit %s (create with 'radarr-tagger config init')", configHint())
	}
	parsed, err := url.Parse(c.Radarr.URL)
	if err != nil {
		return fmt.Errorf("radarr.url: %w", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("radarr.url must be an http(s) URL, got %q", c.Radarr.URL)
	}
	if c.Radarr.APIKey == "" {
		return fmt.Errorf("radarr.api_key is required. Set RADARR_API_KEY env var or edit %s", configHint())
	}
	return nil
}

func (c *Config) validateTagging() error {
	if c.Tagging.ScoreThreshold < 0 {
		return errors.New("tagging.score_threshold must be zero or positive")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.IntervalMinutes < 1 {
		return errors.New("workflow.interval_minutes must be at least 1")
	}
	if c.Workflow.ErrorRetryMinutes < 1 {
		return errors.New("workflow.error_retry_minutes must be at least 1")
	}
	if c.Workflow.TestLimit < 1 {
		return errors.New("workflow.test_limit must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 {
		return errors.New("logging.max_size_mb must be zero or positive")
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be zero or positive")
	}
	return nil
}

func (c *Config) validateDump() error {
	switch c.Dump.Format {
	case "json", "csv":
		return nil
	default:
		return fmt.Errorf("dump.format must be json or csv, got %q", c.Dump.Format)
	}
}

func configHint() string {
	path, err := DefaultConfigPath()
	if err != nil {
		return defaultConfigPath
	}
	return path
}
