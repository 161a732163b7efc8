// Package testsupport provides shared helpers for tests: temp-dir
// configs, queue store setup, and a scriptable fake conversion worker.
package testsupport
