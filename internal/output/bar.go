package output

import (
	"fmt"
	"strings"
)

// XPBar renders the progress bar toward the next level for a fraction in
// [0, 1). Example: "████████░░░░░░░░░░░░ 40%"
func XPBar(fraction float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction >= 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := StyleMuted.Render(fmt.Sprintf("%3.0f%%", fraction*100))
	return fmt.Sprintf("%s %s", StyleHeader.Render(bar), pct)
}

// GoalBar renders progress toward the daily study goal, turning green when
// the goal is met.
func GoalBar(seconds, goalSeconds, width int) string {
	if width <= 0 {
		width = 20
	}
	if goalSeconds <= 0 {
		return ""
	}
	fraction := float64(seconds) / float64(goalSeconds)
	met := fraction >= 1
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := StyleWarning
	if met {
		style = StyleSuccess
	}
	return fmt.Sprintf("%s %s", style.Render(bar),
		StyleMuted.Render(fmt.Sprintf("%s / %s", FormatDuration(seconds), FormatDuration(goalSeconds))))
}
