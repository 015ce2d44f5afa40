package model

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal anomaly encountered while processing a
// document: a clamped segment, a dropped token, an out-of-bounds bounding
// box. Warnings never abort processing; the affected unit is skipped and
// the rest of the document continues.
type Warning struct {
	Stage   string // pipeline stage that recorded the warning
	Page    int    // 0-indexed page, or -1 when not page-specific
	Message string
}

func (w Warning) String() string {
	if w.Page >= 0 {
		return fmt.Sprintf("%s: page %d: %s", w.Stage, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// FormatWarnings formats a slice of warnings as a multi-line string for
// logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
