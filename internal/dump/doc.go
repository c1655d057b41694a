// Package dump writes the raw Radarr movie list to disk for diagnostics.
// JSON output preserves every server field; CSV output flattens a fixed set
// of columns.
package dump
