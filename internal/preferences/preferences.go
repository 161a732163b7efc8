package preferences

const (
	DefaultCPULimitPercent = 100
	DefaultMaxConcurrent   = 2

	MinConcurrent = 1
	MaxConcurrent = 5
)

// Preferences is the persisted user choice record. Zero values are
// normalized to defaults on load, never treated as errors.
type Preferences struct {
	Encoder         string `json:"encoder"`
	GpuPreference   string `json:"gpu_preference"`
	CPULimitPercent int    `json:"cpu_limit_percent"`
	MaxConcurrent   int    `json:"max_concurrent"`
}

// Default returns the preference record used before the user has chosen
// anything.
func Default() Preferences {
	return Preferences{
		GpuPreference:   "auto",
		CPULimitPercent: DefaultCPULimitPercent,
		MaxConcurrent:   DefaultMaxConcurrent,
	}
}

// Normalize clamps out-of-range values to their defaults. The CPU limit
// only accepts the quarter steps the original UI offered.
func (p Preferences) Normalize() Preferences {
	switch p.CPULimitPercent {
	case 25, 50, 75, 100:
	default:
		p.CPULimitPercent = DefaultCPULimitPercent
	}
	if p.MaxConcurrent < MinConcurrent || p.MaxConcurrent > MaxConcurrent {
		p.MaxConcurrent = DefaultMaxConcurrent
	}
	if p.GpuPreference == "" {
		p.GpuPreference = "auto"
	}
	return p
}

// ThreadCap converts the CPU limit percent into a concrete thread count
// for the given core count. nil means unconstrained (100%).
func (p Preferences) ThreadCap(logicalCores int) *int {
	if p.CPULimitPercent >= 100 || logicalCores <= 0 {
		return nil
	}
	threads := logicalCores * p.CPULimitPercent / 100
	if threads < 1 {
		threads = 1
	}
	return &threads
}
