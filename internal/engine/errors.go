package engine

import (
	"errors"
	"fmt"
)

// ErrJobNotFound indicates the referenced job is not tracked.
var ErrJobNotFound = errors.New("job not found")

// ConfigError blocks starting a batch entirely: no usable output
// directory or no encoder to convert with. The job set is not created.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }
