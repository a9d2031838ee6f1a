package ui

import (
	"strings"
)

// Align type for table column alignment
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// TableColumn defines a column in a table
type TableColumn struct {
	Key    string
	Header string
	Align  Align
}

// RenderTableOptions configures table rendering
type RenderTableOptions struct {
	Columns []TableColumn
	Rows    []map[string]string
	Padding int
}

// RenderTable renders a box-drawn table. Cell widths are measured on visible
// characters so styled cells line up.
func RenderTable(opts RenderTableOptions) string {
	if opts.Padding == 0 {
		opts.Padding = 1
	}

	widths := make([]int, len(opts.Columns))
	for i, col := range opts.Columns {
		widths[i] = VisibleWidth(col.Header)
		for _, row := range opts.Rows {
			widths[i] = max(widths[i], VisibleWidth(row[col.Key]))
		}
	}

	hLine := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+opts.Padding*2)
		}
		return Muted(left + strings.Join(parts, mid) + right)
	}

	pad := spaces(opts.Padding)
	renderRow := func(values []string) string {
		parts := make([]string, len(values))
		for i, v := range values {
			if opts.Columns[i].Align == AlignRight {
				v = PadLeft(v, widths[i])
			} else {
				v = PadRight(v, widths[i])
			}
			parts[i] = pad + v + pad
		}
		bar := Muted("│")
		return bar + strings.Join(parts, bar) + bar
	}

	headers := make([]string, len(opts.Columns))
	for i, col := range opts.Columns {
		headers[i] = Bold(col.Header)
	}

	lines := []string{hLine("┌", "┬", "┐"), renderRow(headers), hLine("├", "┼", "┤")}
	for _, row := range opts.Rows {
		values := make([]string, len(opts.Columns))
		for i, col := range opts.Columns {
			values[i] = row[col.Key]
		}
		lines = append(lines, renderRow(values))
	}
	lines = append(lines, hLine("└", "┴", "┘"))

	return strings.Join(lines, "\n") + "\n"
}
