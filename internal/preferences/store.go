package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"dreamcodec/internal/logging"
)

const recordSchemaVersion = 1

type record struct {
	SchemaVersion int         `json:"schema_version"`
	Preferences   Preferences `json:"preferences"`
}

// Store persists the preference record as write-through JSON. Every
// Save replaces the file; Load reads it once at startup.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store backed by the given file path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "preferences"),
	}
}

// Load returns the persisted preferences, normalized. A missing file,
// invalid JSON, or an incompatible schema version yields the defaults.
func (s *Store) Load() Preferences {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read preferences; using defaults",
				logging.Error(err))
		}
		return Default()
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("preferences file is not valid JSON; using defaults",
			logging.Error(err))
		return Default()
	}
	if rec.SchemaVersion != recordSchemaVersion {
		s.logger.Debug("preferences schema mismatch; using defaults",
			logging.Int("found_version", rec.SchemaVersion),
			logging.Int("want_version", recordSchemaVersion))
		return Default()
	}
	return rec.Preferences.Normalize()
}

// Save writes the preferences to disk immediately. The record is
// normalized before persisting so invalid values never reach the file.
func (s *Store) Save(prefs Preferences) error {
	rec := record{
		SchemaVersion: recordSchemaVersion,
		Preferences:   prefs.Normalize(),
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp preferences: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename preferences: %w", err)
	}
	return nil
}
