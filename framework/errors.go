package framework

import (
	"errors"
	"strings"
)

// reformatError makes testify's multi-line assertion messages easier to read in console
// output. The "Error Trace" section only ever points into this suite's helper code, so it
// is dropped, and the tab-aligned labels are flattened.
func reformatError(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "Error Trace:") {
		return err
	}
	var lines []string
	inTrace := false
	for _, line := range splitLines(msg) {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "Error Trace:"):
			inTrace = true
			continue
		case strings.HasPrefix(trimmed, "Error:"), strings.HasPrefix(trimmed, "Messages:"),
			strings.HasPrefix(trimmed, "Test:"):
			inTrace = false
			colon := strings.Index(trimmed, ":")
			trimmed = trimmed[:colon+1] + " " + strings.TrimSpace(trimmed[colon+1:])
		}
		if inTrace {
			continue
		}
		lines = append(lines, trimmed)
	}
	return errors.New(strings.Join(lines, "\n"))
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
