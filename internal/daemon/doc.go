// Package daemon coordinates the long-running tagger process.
//
// It holds a flock-based lock so only one instance tags a library at a time,
// drives reconciliation cycles through the scheduler, stamps each cycle with
// a correlation id, and keeps a status snapshot that the optional HTTP
// endpoint serves. Cycle failures and update summaries are forwarded to the
// notification service.
//
// Keep orchestration logic here: tagging rules and the cycle itself live in
// their respective packages.
package daemon
