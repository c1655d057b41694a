// Package services defines shared utilities consumed by the Radarr client and
// the reconciliation loop.
//
// Key responsibilities:
//   - Context helpers that stamp cycle correlation ids and movie ids for
//     logging.
//   - Structured error markers plus the Wrap helper so callers can tell
//     configuration failures (fatal) from transient ones (retry next cycle).
//
// Use these helpers when wiring new remote calls so error classification
// stays uniform across the daemon and the CLI.
package services
