// Package logging constructs the application's slog loggers and provides
// shared attribute helpers and standardized field names.
package logging
