package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConversion(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateConversion() error {
	switch c.Conversion.OutputContainer {
	case "mp4", "mkv", "avi", "mov", "webm":
	default:
		return fmt.Errorf("conversion.output_container: unsupported container %q", c.Conversion.OutputContainer)
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.PollInterval > 60 {
		return errors.New("workflow.poll_interval must be 60 seconds or less")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
