package encoders

import (
	"fmt"
	"sort"
	"strings"
)

// Type classifies an encoder by the hardware class it runs on.
type Type string

const (
	Cpu       Type = "cpu"
	GpuNvidia Type = "gpu_nvidia"
	GpuAmd    Type = "gpu_amd"
	GpuIntel  Type = "gpu_intel"
	Adobe     Type = "adobe"
)

// Encoder is one named conversion backend. Names are unique within a
// probed set.
type Encoder struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Codec       string `json:"codec"`
	Type        Type   `json:"type"`
}

// IsCPUClass reports whether the encoder runs without a GPU device.
// Professional intermediate codecs count as CPU class.
func (e Encoder) IsCPUClass() bool {
	return e.Type == Cpu || e.Type == Adobe
}

// DisplayName renders the encoder with its hardware-class label.
func (e Encoder) DisplayName() string {
	label := "CPU"
	switch e.Type {
	case GpuNvidia:
		label = "NVIDIA GPU"
	case GpuAmd:
		label = "AMD GPU"
	case GpuIntel:
		label = "Intel GPU"
	case Adobe:
		label = "Professional"
	}
	return fmt.Sprintf("%s (%s) - %s", e.Name, label, e.Description)
}

// Classify maps an encoder name to its hardware class. The second return
// is false for entries that are not usable video encoders (subtitle
// codecs, image formats, and so on).
func Classify(name string) (Type, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "nvenc"):
		return GpuNvidia, true
	case strings.Contains(lower, "amf"):
		return GpuAmd, true
	case strings.Contains(lower, "vaapi") && strings.Contains(lower, "h264"):
		return GpuAmd, true
	case strings.Contains(lower, "qsv"), strings.Contains(lower, "mediacodec"):
		return GpuIntel, true
	case strings.Contains(lower, "prores"),
		strings.Contains(lower, "dnxhd"),
		strings.Contains(lower, "cfhd"),
		strings.Contains(lower, "cineform"):
		return Adobe, true
	}
	for _, marker := range []string{
		"libx264", "libx265", "libxvid", "libvpx", "libaom", "libsvtav1",
		"mpeg", "wmv", "flv", "h263", "huffyuv", "ffv", "rawvideo", "libtheora",
	} {
		if strings.Contains(lower, marker) {
			return Cpu, true
		}
	}
	return "", false
}

// InferCodec guesses the produced codec from an encoder name when the
// probe output carries no explicit codec tag.
func InferCodec(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "264"):
		return "h264"
	case strings.Contains(lower, "265"), strings.Contains(lower, "hevc"):
		return "hevc"
	case strings.Contains(lower, "vp8"):
		return "vp8"
	case strings.Contains(lower, "vp9"):
		return "vp9"
	case strings.Contains(lower, "av1"):
		return "av1"
	case strings.Contains(lower, "mpeg4"), strings.Contains(lower, "xvid"):
		return "mpeg4"
	case strings.Contains(lower, "mpeg2"):
		return "mpeg2video"
	case strings.Contains(lower, "mpeg1"):
		return "mpeg1video"
	case strings.Contains(lower, "wmv"):
		return "wmv2"
	case strings.Contains(lower, "flv"):
		return "flv1"
	case strings.Contains(lower, "prores"):
		return "prores"
	case strings.Contains(lower, "dnxhd"), strings.Contains(lower, "dnxhr"):
		return "dnxhd"
	case strings.Contains(lower, "cineform"), strings.Contains(lower, "cfhd"):
		return "cineform"
	case strings.Contains(lower, "theora"):
		return "theora"
	default:
		return "unknown"
	}
}

// SortByClass orders encoders CPU first, then NVIDIA, AMD, Intel, and
// professional codecs last. Order within a class is preserved.
func SortByClass(list []Encoder) {
	rank := func(t Type) int {
		switch t {
		case Cpu:
			return 0
		case GpuNvidia:
			return 1
		case GpuAmd:
			return 2
		case GpuIntel:
			return 3
		default:
			return 4
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return rank(list[i].Type) < rank(list[j].Type)
	})
}

// DefaultSet is the fallback encoder list used when probing the media
// tool fails entirely.
func DefaultSet() []Encoder {
	return []Encoder{
		{Name: "libx264", Description: "H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10", Codec: "h264", Type: Cpu},
		{Name: "libx265", Description: "H.265 / HEVC (High Efficiency Video Coding)", Codec: "hevc", Type: Cpu},
		{Name: "h264_nvenc", Description: "NVIDIA NVENC H.264 encoder", Codec: "h264", Type: GpuNvidia},
		{Name: "hevc_nvenc", Description: "NVIDIA NVENC HEVC encoder", Codec: "hevc", Type: GpuNvidia},
		{Name: "h264_amf", Description: "AMD AMF H.264 Encoder", Codec: "h264", Type: GpuAmd},
		{Name: "hevc_amf", Description: "AMD AMF HEVC encoder", Codec: "hevc", Type: GpuAmd},
		{Name: "h264_qsv", Description: "H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (Intel Quick Sync Video acceleration)", Codec: "h264", Type: GpuIntel},
		{Name: "hevc_qsv", Description: "HEVC (Intel Quick Sync Video acceleration)", Codec: "hevc", Type: GpuIntel},
	}
}

// SoftwareH264 is the canonical CPU fallback encoder.
const SoftwareH264 = "libx264"

// RequiresDeviceIndex reports whether the encoder selects among multiple
// same-vendor GPU devices and therefore needs a device index parameter.
func RequiresDeviceIndex(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "nvenc") ||
		strings.Contains(lower, "amf") ||
		strings.Contains(lower, "qsv")
}

// TranslateNVENCPreset maps CPU-oriented preset names to the nearest
// preset NVENC accepts. Valid NVENC presets pass through unchanged.
func TranslateNVENCPreset(preset string) string {
	switch preset {
	case "ultrafast", "superfast", "veryfast", "faster":
		return "fast"
	case "fast", "medium":
		return "medium"
	case "slow", "slower", "veryslow":
		return "slow"
	case "default", "hp", "hq", "bd", "ll", "llhq", "llhp", "lossless", "losslesshp":
		return preset
	default:
		return "medium"
	}
}
