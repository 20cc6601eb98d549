package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/focuswatch/internal/engine"
)

// bucketColors shade the heatmap from no study to five-plus hours.
var bucketColors = []lipgloss.Color{
	lipgloss.Color("#37474f"),
	lipgloss.Color("#00363a"),
	lipgloss.Color("#00575b"),
	lipgloss.Color("#00838f"),
	lipgloss.Color("#00acc1"),
	lipgloss.Color("#26c6da"),
	lipgloss.Color("#4dd0e1"),
}

// bucketGlyphs are the no-color fallback, one per intensity bucket.
var bucketGlyphs = []string{"·", "░", "▒", "▓", "█", "█", "█"}

func cellStyle(bucket int) lipgloss.Style {
	if bucket < 0 {
		bucket = 0
	}
	if bucket >= len(bucketColors) {
		bucket = len(bucketColors) - 1
	}
	if bucket == 0 {
		return lipgloss.NewStyle().Foreground(bucketColors[0])
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#0b1e22")).Background(bucketColors[bucket])
}

// RenderMonth draws a calendar grid for one month view, shading each day by
// its study-intensity bucket.
func RenderMonth(view engine.MonthView, thresholds []int) string {
	var sb strings.Builder

	title := fmt.Sprintf("%s %d", view.Month, view.Year)
	if !view.Current {
		title += StyleMuted.Render("  (no data retained)")
	}
	sb.WriteString(StyleHeader.Render(title))
	sb.WriteString("\n")

	for i, day := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(StyleMuted.Render(day))
	}
	sb.WriteString("\n")

	first := time.Date(view.Year, view.Month, 1, 0, 0, 0, 0, time.Local)
	col := int(first.Weekday())
	sb.WriteString(strings.Repeat("    ", col))

	for i, entry := range view.Entries {
		day := i + 1
		bucket := engine.IntensityBucket(entry.StudySeconds, thresholds)
		cell := fmt.Sprintf(" %2d", day)
		if noColor {
			cell = fmt.Sprintf("%2d%s", day, bucketGlyphs[min(bucket, len(bucketGlyphs)-1)])
		} else {
			cell = cellStyle(bucket).Render(cell)
		}
		sb.WriteString(cell)
		sb.WriteString(" ")

		col++
		if col == 7 {
			sb.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		sb.WriteString("\n")
	}

	return sb.String()
}

// HeatmapLegend describes the intensity ladder under the grid.
func HeatmapLegend() string {
	var sb strings.Builder
	sb.WriteString(StyleMuted.Render("less "))
	for b := 0; b < len(bucketColors); b++ {
		if noColor {
			sb.WriteString(bucketGlyphs[b])
		} else {
			sb.WriteString(cellStyle(b).Render("  "))
		}
	}
	sb.WriteString(StyleMuted.Render(" more"))
	return sb.String()
}
