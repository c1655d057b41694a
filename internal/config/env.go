package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envOverrides lists every setting that can be supplied through the
// environment. Nil pointers mean the variable is unset.
type envOverrides struct {
	RadarrURL       *string `env:"RADARR_URL"`
	RadarrAPIKey    *string `env:"RADARR_API_KEY"`
	LogLevel        *string `env:"LOG_LEVEL"`
	LogFormat       *string `env:"LOG_FORMAT"`
	LogDir          *string `env:"LOG_DIR"`
	ScoreThreshold  *int    `env:"SCORE_THRESHOLD"`
	IntervalMinutes *int    `env:"INTERVAL_MINUTES"`
	OutputDirectory *string `env:"OUTPUT_DIRECTORY"`
	NtfyTopic       *string `env:"NTFY_TOPIC"`
	APIBind         *string `env:"API_BIND"`
}

// loadDotEnv seeds the process environment from a .env file. Variables that
// are already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return err
	}
	setString(&c.Radarr.URL, overrides.RadarrURL)
	setString(&c.Radarr.APIKey, overrides.RadarrAPIKey)
	setString(&c.Logging.Level, overrides.LogLevel)
	setString(&c.Logging.Format, overrides.LogFormat)
	setString(&c.Paths.LogDir, overrides.LogDir)
	setString(&c.Paths.OutputDir, overrides.OutputDirectory)
	setString(&c.Notifications.NtfyTopic, overrides.NtfyTopic)
	setString(&c.API.Bind, overrides.APIBind)
	if overrides.ScoreThreshold != nil {
		c.Tagging.ScoreThreshold = *overrides.ScoreThreshold
	}
	if overrides.IntervalMinutes != nil {
		c.Workflow.IntervalMinutes = *overrides.IntervalMinutes
	}
	return nil
}

func setString(dst *string, value *string) {
	if value == nil {
		return
	}
	if trimmed := strings.TrimSpace(*value); trimmed != "" {
		*dst = trimmed
	}
}
