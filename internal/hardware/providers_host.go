package hardware

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// HostCPUProvider enumerates the local processor from OS sources, degrading
// to "Unknown CPU" with the runtime's core count when no source answers.
type HostCPUProvider struct{}

func (HostCPUProvider) CPUInfo(ctx context.Context) (CPU, error) {
	info := CPU{
		Name:         "Unknown CPU",
		LogicalCores: runtime.NumCPU(),
	}
	if name := detectCPUName(ctx); name != "" {
		info.Name = name
	}
	return info, nil
}

func detectCPUName(ctx context.Context) string {
	switch runtime.GOOS {
	case "linux":
		return cpuNameFromProcCpuinfo("/proc/cpuinfo")
	case "darwin":
		out, err := exec.CommandContext(ctx, "sysctl", "-n", "machdep.cpu.brand_string").Output()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))
	case "windows":
		out, err := exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command",
			"Get-CimInstance Win32_Processor | Select-Object -First 1 -ExpandProperty Name").Output()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))
	default:
		return ""
	}
}

func cpuNameFromProcCpuinfo(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "model name") {
			continue
		}
		if _, value, found := strings.Cut(line, ":"); found {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// HostGPUProvider enumerates display adapters by querying platform tools and
// classifying the reported names.
type HostGPUProvider struct{}

func (HostGPUProvider) GPUInfo(ctx context.Context) (GPU, error) {
	names, err := adapterNames(ctx)
	if err != nil {
		return GPU{}, err
	}
	return BuildGPU(names), nil
}

func adapterNames(ctx context.Context) ([]string, error) {
	switch runtime.GOOS {
	case "windows":
		out, err := exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command",
			"Get-CimInstance Win32_VideoController | Select-Object -ExpandProperty Name").Output()
		if err != nil {
			return nil, err
		}
		return nonEmptyLines(string(out)), nil
	case "darwin":
		out, err := exec.CommandContext(ctx, "system_profiler", "SPDisplaysDataType").Output()
		if err != nil {
			return nil, err
		}
		return parseChipsetModels(string(out)), nil
	default:
		out, err := exec.CommandContext(ctx, "lspci").Output()
		if err != nil {
			return nil, err
		}
		return parseLspciVGA(string(out)), nil
	}
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func parseLspciVGA(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "vga compatible controller") &&
			!strings.Contains(lower, "3d controller") &&
			!strings.Contains(lower, "display controller") {
			continue
		}
		if _, name, found := strings.Cut(line, ": "); found {
			names = append(names, strings.TrimSpace(name))
		}
	}
	return names
}

func parseChipsetModels(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if value, found := strings.CutPrefix(trimmed, "Chipset Model:"); found {
			names = append(names, strings.TrimSpace(value))
		}
	}
	return names
}
