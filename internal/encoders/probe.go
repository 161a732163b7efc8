package encoders

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Probe runs `ffmpeg -encoders` against the given binary and parses the
// resulting list. An empty binary defaults to "ffmpeg" on PATH.
func Probe(ctx context.Context, binary string) ([]Encoder, error) {
	name := strings.TrimSpace(binary)
	if name == "" {
		name = "ffmpeg"
	}

	cmd := commandContext(ctx, name, "-hide_banner", "-encoders") //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("probe encoders: %w", err)
	}

	list := ParseList(string(output))
	if len(list) == 0 {
		return nil, fmt.Errorf("probe encoders: %s produced no usable entries", name)
	}
	return list, nil
}
