// Package notifications delivers pipeline milestones via ntfy.
//
// The default implementation publishes to the topic configured in config.toml
// and gracefully degrades to a no-op when notifications are disabled. Pipeline
// code depends only on the Service interface, so alternative transports can be
// added without touching the orchestration.
package notifications
