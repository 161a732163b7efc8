// Package engine owns the conversion orchestration: the job collection,
// encoder and hardware parameter resolution, bounded-concurrency
// scheduling against the external worker, demand-driven progress
// polling, and requeue of failed or cancelled jobs.
//
// The Engine is a single service object instantiated once per process.
// All job-state mutation happens under one lock, so readers always see
// a consistent snapshot and dispatch always honors queue order. Job
// failures are scoped to the one job that produced them; nothing a
// worker reports can abort the scheduler or the poller as a whole.
package engine
