// Package daemon enforces single-instance execution of the conversion
// engine. The runner holds a file lock in the state directory for the
// lifetime of an engine session; a second instance fails fast instead
// of competing for the queue database and the worker.
package daemon
