package hardware

import (
	"context"
	"log/slog"
	"sync"

	"dreamcodec/internal/logging"
)

// Monitor serves the last-known hardware profile immediately and refreshes
// it from the providers on demand. The in-memory profile is replaced
// wholesale on every successful refresh.
type Monitor struct {
	cache   *Cache
	cpuProv CPUInfoProvider
	gpuProv GPUInfoProvider
	logger  *slog.Logger

	mu      sync.RWMutex
	profile *Profile
}

// NewMonitor constructs a monitor seeded from the snapshot cache.
func NewMonitor(cache *Cache, cpuProv CPUInfoProvider, gpuProv GPUInfoProvider, logger *slog.Logger) *Monitor {
	m := &Monitor{
		cache:   cache,
		cpuProv: cpuProv,
		gpuProv: gpuProv,
		logger:  logging.NewComponentLogger(logger, "hardware"),
	}
	if cache != nil {
		if profile, ok := cache.Load(); ok {
			m.profile = profile
			m.logger.Debug("serving cached hardware snapshot",
				logging.String("cpu", profile.CPU.Name),
				logging.Int("adapters", len(profile.GPU.Adapters)))
		}
	}
	return m
}

// Current returns the current profile, which may be a stale snapshot.
func (m *Monitor) Current() (*Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile, m.profile != nil
}

// Refresh queries the providers and replaces the profile. When detection
// fails and a cached profile exists, the cached profile stays authoritative
// and the failure is logged; without one the detection error is surfaced.
func (m *Monitor) Refresh(ctx context.Context) (*Profile, error) {
	fresh, err := Detect(ctx, m.cpuProv, m.gpuProv)
	if err != nil {
		m.mu.RLock()
		cached := m.profile
		m.mu.RUnlock()
		if cached != nil {
			m.logger.Warn("hardware refresh failed; keeping cached snapshot",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check hardware enumeration tools"))
			return cached, nil
		}
		return nil, err
	}

	m.mu.Lock()
	m.profile = fresh
	m.mu.Unlock()

	if m.cache != nil {
		if err := m.cache.Save(fresh); err != nil {
			m.logger.Warn("failed to persist hardware snapshot", logging.Error(err))
		}
	}

	m.logger.Info("hardware profile refreshed",
		logging.String("cpu", fresh.CPU.Name),
		logging.Int("logical_cores", fresh.CPU.LogicalCores),
		logging.String("gpu", fresh.GPU.Name),
		logging.String("gpu_type", string(fresh.GPU.Type)))
	return fresh, nil
}
