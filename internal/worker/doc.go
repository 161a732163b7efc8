// Package worker defines the contract the orchestration engine requires
// from the external conversion tool: start a task, poll its progress by
// an opaque task identifier, and request cancellation. Implementations
// wrap a command-line encoder; the engine never observes its process
// management.
package worker
