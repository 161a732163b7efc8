package queue

import (
	"path/filepath"
	"strings"
)

// Supported input containers. Anything else is skipped at enqueue time
// rather than failing the whole call.
var (
	videoFormats = []string{"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm", "ogv"}
	audioFormats = []string{"mp3", "wav", "aac", "flac", "m4a", "ogg"}
)

// SupportedExtension reports whether the path carries a convertible
// media extension.
func SupportedExtension(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	for _, candidate := range videoFormats {
		if ext == candidate {
			return true
		}
	}
	for _, candidate := range audioFormats {
		if ext == candidate {
			return true
		}
	}
	return false
}

// SupportedExtensions returns the full accepted extension list, video
// formats first.
func SupportedExtensions() []string {
	out := make([]string, 0, len(videoFormats)+len(audioFormats))
	out = append(out, videoFormats...)
	out = append(out, audioFormats...)
	return out
}
