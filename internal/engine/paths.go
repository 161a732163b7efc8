package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// deriveOutputPath builds the destination for one input: the input's
// stem plus the configured container extension under the output
// directory, suffixed " (1)", " (2)", ... on collision with existing
// files or other outputs in the same batch.
func deriveOutputPath(outputDir, inputPath, container string, taken map[string]struct{}) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	candidate := filepath.Join(outputDir, fmt.Sprintf("%s.%s", stem, container))
	for n := 1; pathTaken(candidate, taken); n++ {
		candidate = filepath.Join(outputDir, fmt.Sprintf("%s (%d).%s", stem, n, container))
	}
	taken[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func pathTaken(path string, taken map[string]struct{}) bool {
	if _, ok := taken[strings.ToLower(path)]; ok {
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}
