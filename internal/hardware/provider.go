package hardware

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// CPUInfoProvider enumerates the host processor.
type CPUInfoProvider interface {
	CPUInfo(ctx context.Context) (CPU, error)
}

// GPUInfoProvider enumerates the display adapters.
type GPUInfoProvider interface {
	GPUInfo(ctx context.Context) (GPU, error)
}

// DetectionError wraps a hardware enumeration failure.
type DetectionError struct {
	Err error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("hardware detection failed: %v", e.Err)
}

func (e *DetectionError) Unwrap() error { return e.Err }

// Detect runs both providers concurrently and assembles a fresh profile.
// Either provider failing fails the whole detection.
func Detect(ctx context.Context, cpuProv CPUInfoProvider, gpuProv GPUInfoProvider) (*Profile, error) {
	var (
		cpu CPU
		gpu GPU
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		info, err := cpuProv.CPUInfo(groupCtx)
		if err != nil {
			return fmt.Errorf("cpu enumeration: %w", err)
		}
		cpu = info
		return nil
	})
	group.Go(func() error {
		info, err := gpuProv.GPUInfo(groupCtx)
		if err != nil {
			return fmt.Errorf("gpu enumeration: %w", err)
		}
		gpu = info
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, &DetectionError{Err: err}
	}

	return &Profile{CPU: cpu, GPU: gpu}, nil
}
