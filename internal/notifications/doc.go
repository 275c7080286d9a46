// Package notifications tells the operator how an import run ended.
//
// The ntfy implementation posts a short plain-text message to the topic
// URL configured in config.toml; without a topic a no-op service is
// returned so callers never need to check.
package notifications
