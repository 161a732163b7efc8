package hardware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dreamcodec/internal/logging"
)

// snapshotSchemaVersion changes whenever the persisted layout changes.
// A mismatch is treated as a cache miss, never as an error.
const snapshotSchemaVersion = 1

type snapshot struct {
	SchemaVersion int       `json:"schema_version"`
	SavedAt       time.Time `json:"saved_at"`
	CPUInfo       CPU       `json:"cpu_info"`
	GPUInfo       GPU       `json:"gpu_info"`
}

// Cache persists the last-known hardware profile so a usable profile is
// available immediately on cold start.
type Cache struct {
	path   string
	logger *slog.Logger
}

// NewCache creates a cache backed by the given file path. An empty path
// yields a cache whose operations are no-ops.
func NewCache(path string, logger *slog.Logger) *Cache {
	return &Cache{
		path:   path,
		logger: logging.NewComponentLogger(logger, "hwcache"),
	}
}

// Load returns the cached profile if a compatible snapshot exists.
func (c *Cache) Load() (*Profile, bool) {
	if c.path == "" {
		return nil, false
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("failed to read hardware snapshot",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "snapshot will be rebuilt on next refresh"))
		}
		return nil, false
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.logger.Warn("hardware snapshot is not valid JSON; treating as cache miss",
			logging.Error(err))
		return nil, false
	}
	if snap.SchemaVersion != snapshotSchemaVersion {
		c.logger.Debug("hardware snapshot schema mismatch; treating as cache miss",
			logging.Int("found_version", snap.SchemaVersion),
			logging.Int("want_version", snapshotSchemaVersion))
		return nil, false
	}
	if snap.CPUInfo.LogicalCores <= 0 {
		c.logger.Debug("hardware snapshot structurally invalid; treating as cache miss")
		return nil, false
	}

	return &Profile{CPU: snap.CPUInfo, GPU: snap.GPUInfo}, true
}

// Save overwrites the persisted snapshot with the given profile.
func (c *Cache) Save(profile *Profile) error {
	if c.path == "" || profile == nil {
		return nil
	}

	snap := snapshot{
		SchemaVersion: snapshotSchemaVersion,
		SavedAt:       time.Now().UTC(),
		CPUInfo:       profile.CPU,
		GPUInfo:       profile.GPU,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	// Write atomically via temp file.
	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}
