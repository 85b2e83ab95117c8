// Package report accumulates per-package update outcomes and renders
// them as a Markdown change summary.
//
// Rows are kept as structured records in processing order and only
// serialized at the end of the run, so row construction is testable
// independently of rendering.
package report

import "strings"

// Outcome values for a processed candidate. A patch failure is not
// listed here: its outcome string is the failing patch identifier
// itself.
const (
	OutcomeSuccess         = "success"
	OutcomeSkipped         = "skipped"
	OutcomeError           = "error"
	OutcomeDependencyError = "dependency-error"
	OutcomeUnknown         = "unknown"
)

// highlightLen separates built-in status words from patch identifiers.
// The longest built-in outcome is dependency-error (16 characters);
// anything longer is a patch identifier carried into the outcome.
const highlightLen = len(OutcomeDependencyError)

// Row is one processed dependency update candidate.
//
// Fields:
//   - Name: Namespaced package name
//   - ReleaseURL: Link target for the package cell
//   - Current: Locked version before the run
//   - Latest: Latest available version
//   - Outcome: Outcome constant or failing patch identifier
//   - PatchCount: Number of patches declared for the package
//   - Abandoned: Whether upstream marked the package abandoned
type Row struct {
	Name       string
	ReleaseURL string
	Current    string
	Latest     string
	Outcome    string
	PatchCount int
	Abandoned  bool
}

// IsPatchFailure reports whether the row's outcome carries a patch
// identifier rather than a built-in status word.
//
// Returns:
//   - bool: true when the outcome string is longer than any built-in status
func (r Row) IsPatchFailure() bool {
	return len(r.Outcome) > highlightLen
}

// Report is the ordered accumulation of rows for one run.
type Report struct {
	rows []Row
}

// New creates an empty report.
//
// Returns:
//   - *Report: Report ready to accumulate rows
func New() *Report {
	return &Report{}
}

// Append adds a row, preserving processing order.
//
// Parameters:
//   - row: Processed candidate row
func (r *Report) Append(row Row) {
	r.rows = append(r.rows, row)
}

// Rows returns the accumulated rows in processing order.
//
// Returns:
//   - []Row: All rows appended so far
func (r *Report) Rows() []Row {
	return r.rows
}

// Highlights lists the failures worth calling out above the table:
// patch reapplication failures and dependency resolution errors.
//
// Returns:
//   - []string: One message per highlighted row, in row order
func (r *Report) Highlights() []string {
	var notes []string
	for _, row := range r.rows {
		switch {
		case row.IsPatchFailure():
			notes = append(notes, row.Name+": patch failed to apply: "+row.Outcome)
		case row.Outcome == OutcomeDependencyError:
			notes = append(notes, row.Name+": dependency resolution failed")
		}
	}
	return notes
}

// Counts summarizes outcomes for the run footer.
//
// Returns:
//   - updated: Rows with a success outcome
//   - skipped: Rows with a skipped outcome
//   - failed: Everything else (errors, patch failures, unknown)
func (r *Report) Counts() (updated, skipped, failed int) {
	for _, row := range r.rows {
		switch row.Outcome {
		case OutcomeSuccess:
			updated++
		case OutcomeSkipped:
			skipped++
		default:
			failed++
		}
	}
	return updated, skipped, failed
}

// escapeCell makes a value safe inside a Markdown table cell.
func escapeCell(v string) string {
	v = strings.ReplaceAll(v, "|", "\\|")
	return strings.ReplaceAll(v, "\n", " ")
}
