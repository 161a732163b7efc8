package engine

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"

	"dreamcodec/internal/encoders"
	"dreamcodec/internal/hardware"
	"dreamcodec/internal/logging"
)

// StartBatch commits the intake queue into a conversion batch: resolves
// the output directory and encoder parameters, drains the queue into
// pending jobs, and runs one scheduling pass. It returns the number of
// jobs created. An unresolvable output directory or an empty encoder
// set yields a ConfigError and leaves the intake queue untouched.
func (e *Engine) StartBatch(ctx context.Context) (int, error) {
	outputDir, err := e.cfg.ResolveOutputDir()
	if err != nil {
		return 0, &ConfigError{Reason: "no usable output directory", Err: err}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, &ConfigError{Reason: "create output directory", Err: err}
	}

	var profile *hardware.Profile
	if e.monitor != nil {
		profile, _ = e.monitor.Current()
	}
	prefs := e.prefStore.Load()

	available, err := e.encoderSource(ctx)
	if err != nil {
		e.logger.Warn("encoder probe failed; using built-in defaults",
			logging.Error(err))
		available = encoders.DefaultSet()
	}
	if len(available) == 0 {
		return 0, &ConfigError{Reason: "no encoders available"}
	}

	filtered := encoders.Filter(available, profile, prefs.GpuPreference)
	chosen, ok := e.chooseEncoder(filtered, prefs.Encoder, prefs.GpuPreference, profile)
	if !ok {
		return 0, &ConfigError{Reason: "no encoders available"}
	}

	entries, err := e.store.DequeueAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	cores := 0
	if profile != nil {
		cores = profile.CPU.LogicalCores
	}
	preset := e.cfg.Conversion.Preset
	if strings.Contains(strings.ToLower(chosen.Name), "nvenc") {
		preset = encoders.TranslateNVENCPreset(preset)
	}
	params := Params{
		Encoder:        chosen.Name,
		GPUDeviceIndex: encoders.ResolveDeviceIndex(profile, prefs.GpuPreference, chosen.Name),
		CPUThreadCap:   prefs.ThreadCap(cores),
		Preset:         preset,
	}

	taken := make(map[string]struct{})
	batch := make([]*Job, 0, len(entries))
	for _, entry := range entries {
		batch = append(batch, &Job{
			ID:           uuid.NewString(),
			InputPath:    entry.SourcePath,
			OutputPath:   deriveOutputPath(outputDir, entry.SourcePath, e.cfg.Conversion.OutputContainer, taken),
			DisplayTitle: entry.DisplayTitle,
			Status:       StatusPending,
			Params:       params,
		})
	}

	e.mu.Lock()
	if !e.batchActive {
		e.batchActive = true
		e.batchStart = nowFunc()
		e.batchCompleted = 0
		e.batchFailed = 0
	}
	e.jobs = append(e.jobs, batch...)
	e.logger.Info("batch committed",
		logging.Int("jobs", len(batch)),
		logging.String("encoder", chosen.Name),
		logging.String("output_dir", outputDir))
	e.schedulePassLocked(ctx)
	e.ensurePollerLocked()
	e.mu.Unlock()

	if err := e.notifier.NotifyBatchStarted(ctx, len(batch)); err != nil {
		e.logger.Warn("batch start notification failed", logging.Error(err))
	}
	return len(batch), nil
}

// chooseEncoder honors an explicit preference when it survives
// filtering, otherwise falls back to the default-pick ladder.
func (e *Engine) chooseEncoder(filtered []encoders.Encoder, preferredName, gpuPreference string, profile *hardware.Profile) (encoders.Encoder, bool) {
	if preferredName != "" {
		for _, candidate := range filtered {
			if candidate.Name == preferredName {
				return candidate, true
			}
		}
	}
	vendor, _ := encoders.ResolvePreferredGpuType(gpuPreference, profile)
	return encoders.PickDefault(filtered, vendor)
}
