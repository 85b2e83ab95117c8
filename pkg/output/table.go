// Package output renders the console view of a run: a width-aware
// aligned table with colored statuses. The Markdown artifact produced
// by pkg/report is the contract; this package only serves humans
// watching the run.
package output

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column represents a single table column with its header and current width.
type Column struct {
	Header string
	Width  int
}

// Table provides a console table formatter with dynamic column widths.
// It handles Unicode-aware width calculations and consistent formatting.
type Table struct {
	columns   []Column
	separator string
}

// NewTable creates a new table formatter.
//
// The table uses a two-space column separator; column widths start at
// the header widths and grow as rows are measured.
//
// Returns:
//   - *Table: A new table instance ready for column configuration
func NewTable() *Table {
	return &Table{separator: "  "}
}

// AddColumn adds a column with the given header and returns the table.
//
// Parameters:
//   - header: The text to display in the column header
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumn(header string) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  displayWidth(header),
	})
	return t
}

// AddColumnWithMinWidth adds a column with a minimum width guarantee.
//
// The column width is the larger of minWidth and the header's display
// width. Useful for columns whose values are only known while streaming
// rows.
//
// Parameters:
//   - header: The text to display in the column header
//   - minWidth: Minimum width in character cells
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumnWithMinWidth(header string, minWidth int) *Table {
	width := displayWidth(header)
	if minWidth > width {
		width = minWidth
	}
	t.columns = append(t.columns, Column{Header: header, Width: width})
	return t
}

// UpdateWidths grows column widths to fit the given row values.
//
// Parameters:
//   - values: One value per column, in column order
func (t *Table) UpdateWidths(values ...string) {
	for i, v := range values {
		if i >= len(t.columns) {
			break
		}
		if w := displayWidth(v); w > t.columns[i].Width {
			t.columns[i].Width = w
		}
	}
}

// HeaderRow formats the header line.
//
// Returns:
//   - string: All column headers padded to their widths
func (t *Table) HeaderRow() string {
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Header
	}
	return t.FormatRow(headers...)
}

// SeparatorRow formats the dashed line under the header.
//
// Returns:
//   - string: Dashes matching every column width
func (t *Table) SeparatorRow() string {
	parts := make([]string, len(t.columns))
	for i, c := range t.columns {
		parts[i] = strings.Repeat("-", c.Width)
	}
	return strings.Join(parts, t.separator)
}

// FormatRow formats one row of values padded to the column widths.
//
// Extra values beyond the configured columns are ignored; missing
// values render as empty cells.
//
// Parameters:
//   - values: One value per column, in column order
//
// Returns:
//   - string: The formatted row without trailing newline
func (t *Table) FormatRow(values ...string) string {
	parts := make([]string, len(t.columns))
	for i, c := range t.columns {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		if i == len(t.columns)-1 {
			// Last column stays unpadded to avoid trailing whitespace.
			parts[i] = v
		} else {
			parts[i] = toWidth(v, c.Width)
		}
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// displayWidth returns the terminal display width of a string,
// accounting for wide Unicode characters.
func displayWidth(val string) int {
	return runewidth.StringWidth(val)
}

// toWidth pads a string with spaces to the target display width.
func toWidth(val string, width int) string {
	current := displayWidth(val)
	if current >= width {
		return val
	}
	return val + strings.Repeat(" ", width-current)
}
