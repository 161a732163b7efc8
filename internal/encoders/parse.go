package encoders

import (
	"strings"
)

// ParseList extracts the video encoders from `ffmpeg -encoders` output.
// Entries before the "------" separator are legend text and skipped;
// entries without the V capability flag or without a recognized hardware
// class are dropped. The result is ordered CPU first, then by vendor.
func ParseList(output string) []Encoder {
	var (
		list       []Encoder
		pastHeader bool
	)
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if !pastHeader {
			if strings.HasPrefix(trimmed, "---") {
				pastHeader = true
			}
			continue
		}

		flags, rest, ok := splitEncoderLine(trimmed)
		if !ok || !strings.Contains(flags, "V") {
			continue
		}
		name, description, ok := strings.Cut(rest, " ")
		if !ok {
			name, description = rest, ""
		}
		description = strings.TrimSpace(description)

		encType, usable := Classify(name)
		if !usable {
			continue
		}

		codec := codecFromDescription(description)
		if codec == "" {
			codec = InferCodec(name)
		}
		if idx := strings.Index(description, " (codec"); idx >= 0 {
			description = description[:idx]
		}

		list = append(list, Encoder{
			Name:        name,
			Description: description,
			Codec:       codec,
			Type:        encType,
		})
	}

	SortByClass(list)
	return list
}

// splitEncoderLine separates the six-character capability column from the
// rest of an encoder entry.
func splitEncoderLine(line string) (flags, rest string, ok bool) {
	flags, rest, found := strings.Cut(line, " ")
	if !found || len(flags) != 6 {
		return "", "", false
	}
	for _, r := range flags {
		if !strings.ContainsRune("VASFXD.", r) {
			return "", "", false
		}
	}
	return flags, strings.TrimSpace(rest), true
}

// codecFromDescription pulls the codec name out of a trailing
// "(codec xxx)" tag, returning "" when absent.
func codecFromDescription(description string) string {
	idx := strings.Index(description, "(codec ")
	if idx < 0 {
		return ""
	}
	tail := description[idx+len("(codec "):]
	end := strings.IndexByte(tail, ')')
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(tail[:end])
}
