package config

const (
	defaultLogDir                = "~/.local/share/dreamcodec/logs"
	defaultStateDir              = "~/.local/share/dreamcodec"
	defaultOutputContainer       = "mp4"
	defaultPreset                = "fast"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultPollInterval          = 1
	defaultErrorRetryInterval    = 5
	defaultNotifyRequestTimeout  = 10
	defaultOutputFolderName      = "Dreamcodec Output"
	defaultNotificationsOnQueue  = true
	defaultNotificationsOnErrors = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Conversion: Conversion{
			OutputContainer: defaultOutputContainer,
			Preset:          defaultPreset,
		},
		Workflow: Workflow{
			PollInterval:       defaultPollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Queue:          defaultNotificationsOnQueue,
			Errors:         defaultNotificationsOnErrors,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
