// Package hardware models the detected CPU/GPU profile, runs the
// enumeration providers, and caches the last-known snapshot on disk.
package hardware
