package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveOutputDir returns a usable output directory, creating it if needed.
// An explicitly configured directory wins; otherwise the first writable
// candidate beneath the user's Videos directory is used. Failure here blocks
// starting a batch.
func (c *Config) ResolveOutputDir() (string, error) {
	if dir := strings.TrimSpace(c.Paths.OutputDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory %q: %w", dir, err)
		}
		return dir, nil
	}

	candidates, err := videosDirCandidates()
	if err != nil {
		return "", err
	}

	seen := make(map[string]struct{}, len(candidates))
	var attempts []string
	for _, base := range candidates {
		key := strings.ToLower(base)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		target := filepath.Join(base, defaultOutputFolderName)
		if err := os.MkdirAll(target, 0o755); err != nil {
			attempts = append(attempts, fmt.Sprintf("%s (%v)", target, err))
			continue
		}
		return target, nil
	}

	return "", fmt.Errorf("no usable output directory; tried: %s", strings.Join(attempts, "; "))
}

func videosDirCandidates() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	var candidates []string
	if runtime.GOOS == "windows" {
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			candidates = append(candidates, filepath.Join(profile, "Videos"))
		}
	}
	if xdg := os.Getenv("XDG_VIDEOS_DIR"); xdg != "" {
		candidates = append(candidates, xdg)
	}
	candidates = append(candidates, filepath.Join(home, "Videos"))
	return candidates, nil
}
