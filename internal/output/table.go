package output

import (
	"fmt"
	"strings"
)

// renderWidth is the terminal width tables and section rules fit within.
var renderWidth = 80

// SetWidth sets the render width for tables and section rules. Values too
// narrow to hold anything are ignored.
func SetWidth(w int) {
	if w >= 20 {
		renderWidth = w
	}
}

// Width returns the current render width.
func Width() int {
	return renderWidth
}

// Table is a simple styled table renderer. Rows wider than the render
// width are squeezed by truncating cells in the widest column.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row of values to the table. The number of values should
// match the number of headers.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		if len(row[i]) > t.widths[i] {
			t.widths[i] = len(row[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Render returns the formatted table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	t.fit(renderWidth)

	var sb strings.Builder

	// Header row.
	for i, h := range t.headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleHeader.Render(pad(truncate(h, t.widths[i]), t.widths[i])))
	}
	sb.WriteString("\n")

	// Separator.
	for i, w := range t.widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")

	// Data rows.
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(pad(truncate(cell, t.widths[i]), t.widths[i]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Print writes the table to stdout.
func (t *Table) Print() {
	fmt.Print(t.Render())
}

// fit squeezes column widths until the rendered line fits max, repeatedly
// shaving the widest column. Columns never shrink below minColWidth, so a
// table with many columns may still overflow a very narrow width.
func (t *Table) fit(max int) {
	const minColWidth = 6
	total := func() int {
		n := 2 * (len(t.widths) - 1)
		for _, w := range t.widths {
			n += w
		}
		return n
	}
	for total() > max {
		widest := 0
		for i := range t.widths {
			if t.widths[i] > t.widths[widest] {
				widest = i
			}
		}
		if t.widths[widest] <= minColWidth {
			return
		}
		t.widths[widest]--
	}
}

// pad right-pads a string to the given width.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// truncate shortens s to fit width, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", renderWidth-14))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
