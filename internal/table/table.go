// Package table turns search documents and report rows into flat string
// tables for the terminal.
package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	sepStyle    = lipgloss.NewStyle().Faint(true)
)

// FlattenValue renders a list as its sorted unique elements joined by commas.
// Scalars are rendered as is and nil becomes the empty string.
func FlattenValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return joinUnique(items)
	case []any:
		return joinUnique(t)
	default:
		return fmt.Sprint(t)
	}
}

func joinUnique(items []any) string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		s := fmt.Sprint(it)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}

// FlattenLists flattens every value of every row.
func FlattenLists[M ~map[string]any](rows []M) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		flat := make(map[string]string, len(row))
		for k, v := range row {
			flat[k] = FlattenValue(v)
		}
		out = append(out, flat)
	}
	return out
}

// Columns returns the union of the keys of rows in sorted order.
func Columns(rows []map[string]string) []string {
	seen := map[string]struct{}{}
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Table is a static table of string cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// New creates an empty table with the given column headers.
func New(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

// AddRow appends a row. Cells beyond the header count are not rendered.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// FromMaps builds a table with one column per entry of columns. Missing cells are left blank.
func FromMaps(title string, columns []string, rows []map[string]string) *Table {
	t := New(title, columns...)
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = row[c]
		}
		t.AddRow(cells...)
	}
	return t
}

// Render draws the table. An empty table renders as the empty string.
func (t *Table) Render() string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	// padding is part of the style width
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(titleStyle.Render(t.Title))
		sb.WriteString("\n")
	}
	writeLine(&sb, headerStyle, widths, t.Headers)
	sb.WriteString(sepStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range t.Rows {
		writeLine(&sb, cellStyle, widths, row)
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, style lipgloss.Style, widths []int, cells []string) {
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			sb.WriteString(sepStyle.Render("|"))
		}
		sb.WriteString(style.Width(widths[i]).Render(cell))
	}
	sb.WriteString("\n")
}
