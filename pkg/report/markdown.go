package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Markdown renders the full change summary: a heading, the highlight
// list when any failure deserves attention, and the result table with
// one row per enumerated candidate in processing order.
//
// Returns:
//   - string: Complete Markdown document, trailing newline included
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString("## Dependency updates\n\n")

	if notes := r.Highlights(); len(notes) > 0 {
		b.WriteString("### Needs attention\n\n")
		for _, note := range notes {
			b.WriteString("- " + escapeCell(note) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("| Package | From | To | Status | Patches | Abandoned |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")

	for _, row := range r.rows {
		name := fmt.Sprintf("[%s](%s)", escapeCell(row.Name), row.ReleaseURL)
		abandoned := "no"
		if row.Abandoned {
			abandoned = "yes"
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			name,
			escapeCell(row.Current),
			escapeCell(row.Latest),
			escapeCell(row.Outcome),
			strconv.Itoa(row.PatchCount),
			abandoned,
		))
	}

	updated, skipped, failed := r.Counts()
	b.WriteString(fmt.Sprintf("\n%d updated, %d skipped, %d failed\n", updated, skipped, failed))

	return b.String()
}

// WriteFile writes the Markdown summary to path, creating or
// truncating the file.
//
// Parameters:
//   - path: Destination file path
//
// Returns:
//   - error: Non-nil when the file cannot be written
func (r *Report) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown()), 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}
