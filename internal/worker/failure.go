package worker

import "strings"

// failureKeywords mark log lines that likely explain a failure. Scanned
// most-recent-first.
var failureKeywords = []string{
	"error",
	"failed",
	"invalid",
	"unknown",
	"could not",
	"no such",
	"permission",
	"denied",
}

const fallbackFailureMessage = "conversion failed"

// DeriveFailureMessage extracts the most useful failure explanation from
// a progress payload. Precedence: the worker's explicit error message,
// then the most recent log line matching a failure keyword, then the
// most recent log line, then a fixed fallback.
func DeriveFailureMessage(p *TaskProgress) string {
	if p == nil {
		return fallbackFailureMessage
	}
	if msg := strings.TrimSpace(p.ErrorMessage); msg != "" {
		return msg
	}

	for i := len(p.Log) - 1; i >= 0; i-- {
		line := strings.TrimSpace(p.Log[i])
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, keyword := range failureKeywords {
			if strings.Contains(lower, keyword) {
				return line
			}
		}
	}

	for i := len(p.Log) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(p.Log[i]); line != "" {
			return line
		}
	}
	return fallbackFailureMessage
}
