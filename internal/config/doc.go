// Package config loads, normalizes, and validates tagger configuration.
//
// Settings come from three layers, later layers winning: repository defaults,
// a TOML file, and environment variables (optionally seeded from a .env file
// in the working directory). Environment names follow the original cron
// deployment: RADARR_URL, RADARR_API_KEY, LOG_LEVEL, SCORE_THRESHOLD,
// INTERVAL_MINUTES and friends.
//
// Always obtain settings through this package so the daemon and CLI receive
// expanded paths and clear validation errors.
package config
