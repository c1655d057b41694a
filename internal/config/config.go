package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"radarrtagger/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Radarr contains connection settings for the Radarr server.
type Radarr struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Tagging contains classification settings.
type Tagging struct {
	ScoreThreshold int `toml:"score_threshold"`
}

// Workflow contains loop timing settings.
type Workflow struct {
	IntervalMinutes   int `toml:"interval_minutes"`
	ErrorRetryMinutes int `toml:"error_retry_minutes"`
	TestLimit         int `toml:"test_limit"`
}

// Paths contains directory configuration.
type Paths struct {
	LogDir    string `toml:"log_dir"`
	OutputDir string `toml:"output_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	MaxSizeMB     int    `toml:"max_size_mb"`
	RetentionDays int    `toml:"retention_days"`
}

// API contains the optional status endpoint settings.
type API struct {
	Bind  string `toml:"bind"`
	Token string `toml:"token"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	CycleErrors    bool   `toml:"cycle_errors"`
	Updates        bool   `toml:"updates"`
}

// Dump contains settings for the raw movie diagnostic dump.
type Dump struct {
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for the tagger.
type Config struct {
	Radarr        Radarr        `toml:"radarr"`
	Tagging       Tagging       `toml:"tagging"`
	Workflow      Workflow      `toml:"workflow"`
	Paths         Paths         `toml:"paths"`
	Logging       Logging       `toml:"logging"`
	API           API           `toml:"api"`
	Notifications Notifications `toml:"notifications"`
	Dump          Dump          `toml:"dump"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file, then applies
// .env and environment overrides. It returns the config, the resolved file
// path, and whether that file existed. Every returned error matches
// services.ErrConfiguration.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, configError("resolve path", err)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, configError("open config", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, configError("parse config", err)
		}
	}

	if err := loadDotEnv(""); err != nil {
		return nil, "", false, configError("load .env", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, configError("environment", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, configError("normalize", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, configError("validate", err)
	}

	return &cfg, resolvedPath, exists, nil
}

func configError(operation string, err error) error {
	return services.Wrap(services.ErrConfiguration, "config", operation, "", err)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory. The output directory is only
// created by the dump command.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// Interval returns the sleep between successful cycles.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Workflow.IntervalMinutes) * time.Minute
}

// ErrorRetry returns the back-off after a failed cycle.
func (c *Config) ErrorRetry() time.Duration {
	return time.Duration(c.Workflow.ErrorRetryMinutes) * time.Minute
}

// RadarrTimeout returns the per-request timeout for Radarr calls.
func (c *Config) RadarrTimeout() time.Duration {
	return time.Duration(c.Radarr.TimeoutSeconds) * time.Second
}

// LockPath returns the daemon single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "radarr-tagger.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Overrides carries command-line values that take precedence over the file
// and environment.
type Overrides struct {
	LogLevel   string
	LogFormat  string
	DumpFormat string
}

// ApplyOverrides applies non-empty overrides and re-validates the result.
func (c *Config) ApplyOverrides(o Overrides) error {
	if v := strings.TrimSpace(o.LogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(o.LogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := strings.TrimSpace(o.DumpFormat); v != "" {
		c.Dump.Format = strings.ToLower(v)
	}
	c.normalizeLogging()
	if err := c.Validate(); err != nil {
		return configError("apply overrides", err)
	}
	return nil
}
