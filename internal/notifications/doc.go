// Package notifications delivers conversion events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Events are batch-scoped: a failing batch produces one aggregate
// message, never one message per job.
//
// Extend this package if you need alternative transports; the engine depends
// only on the simple Service interface.
package notifications
