package ui

import (
	"fmt"
	"strings"
)

const (
	filledCell = "█"
	blankCell  = "░"
)

// RenderBar renders completed/total as a fixed-width bar with a trailing
// integer percentage, e.g. "[█████░░░░░] 50%".
//
// The percentage is floored. A zero total renders as 0% with an all-blank
// bar rather than faulting; the reporter never makes control decisions, so
// a defined output is all that matters. Out-of-range inputs are clamped.
func RenderBar(completed, total, width int) string {
	if width <= 0 {
		width = 50
	}

	percent := 0
	if total > 0 {
		percent = completed * 100 / total
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := percent * width / 100

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strings.Repeat(filledCell, filled))
	b.WriteString(strings.Repeat(blankCell, width-filled))
	fmt.Fprintf(&b, "] %d%%", percent)

	return b.String()
}
