// Package preferences persists the user's conversion choices: the
// selected encoder, the GPU preference, the CPU usage limit, and the
// concurrency cap. The store is write-through JSON read once at startup.
package preferences
