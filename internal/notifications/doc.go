// Package notifications delivers tagger events via ntfy.
//
// The ntfy implementation posts to the topic URL configured in config.toml
// and degrades to a no-op when no topic is set. Cycle failures and tag update
// summaries can each be switched off; test notifications are always sent.
package notifications
