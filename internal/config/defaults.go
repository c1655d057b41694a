package config

const (
	defaultRadarrTimeoutSeconds     = 30
	defaultScoreThreshold           = 100
	defaultIntervalMinutes          = 20
	defaultErrorRetryMinutes        = 5
	defaultTestLimit                = 5
	defaultLogDir                   = "~/.local/share/radarr-tagger/logs"
	defaultOutputDir                = "results"
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
	defaultLogMaxSizeMB             = 10
	defaultLogRetentionDays         = 30
	defaultNotifyRequestTimeout     = 10
	defaultDumpFormat               = "json"
	defaultConfigPath               = "~/.config/radarr-tagger/config.toml"
	projectConfigName               = "radarr-tagger.toml"
	defaultNotifyCycleErrorsEnabled = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Radarr: Radarr{
			TimeoutSeconds: defaultRadarrTimeoutSeconds,
		},
		Tagging: Tagging{
			ScoreThreshold: defaultScoreThreshold,
		},
		Workflow: Workflow{
			IntervalMinutes:   defaultIntervalMinutes,
			ErrorRetryMinutes: defaultErrorRetryMinutes,
			TestLimit:         defaultTestLimit,
		},
		Paths: Paths{
			LogDir:    defaultLogDir,
			OutputDir: defaultOutputDir,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			MaxSizeMB:     defaultLogMaxSizeMB,
			RetentionDays: defaultLogRetentionDays,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			CycleErrors:    defaultNotifyCycleErrorsEnabled,
		},
		Dump: Dump{
			Format: defaultDumpFormat,
		},
	}
}
