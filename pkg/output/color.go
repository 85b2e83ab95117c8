package output

import (
	"github.com/fatih/color"

	"github.com/drupdate/drupdate/pkg/report"
)

var (
	// Outcome colors
	Success = color.New(color.FgGreen)
	Skipped = color.New(color.Faint)
	Failure = color.New(color.FgRed)
	Unknown = color.New(color.FgYellow)
	Patch   = color.New(color.FgMagenta)

	// Message colors
	Warning = color.New(color.FgYellow)
	Header  = color.New(color.FgWhite, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// OutcomeColor returns the color used to render an outcome string.
func OutcomeColor(outcome string) *color.Color {
	switch outcome {
	case report.OutcomeSuccess:
		return Success
	case report.OutcomeSkipped:
		return Skipped
	case report.OutcomeError, report.OutcomeDependencyError:
		return Failure
	case report.OutcomeUnknown:
		return Unknown
	default:
		// Anything else is a patch identifier.
		return Patch
	}
}
