package cmd

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/drupdate/drupdate/pkg/composer"
	"github.com/drupdate/drupdate/pkg/config"
	"github.com/drupdate/drupdate/pkg/manifest"
	"github.com/drupdate/drupdate/pkg/output"
	"github.com/drupdate/drupdate/pkg/preflight"
	"github.com/drupdate/drupdate/pkg/report"
	"github.com/drupdate/drupdate/pkg/update"
	"github.com/drupdate/drupdate/pkg/version"
)

// Swappable seams for tests.
var (
	outdatedFunc  = composer.Outdated
	preflightFunc = preflight.Check
	lookupEnvFunc = os.LookupEnv
)

// runUpdate executes the update run: resolve options, verify
// prerequisites, enumerate candidates, process each one sequentially,
// and publish the report.
//
// Candidates are processed strictly in Composer's order, each to
// completion before the next starts. Per-package failures become rows;
// the run itself only fails on setup problems or the inability to
// spawn Composer.
//
// Parameters:
//   - cmd: Cobra command instance (unused)
//   - args: Positional arguments (unused)
//
// Returns:
//   - error: Fatal setup or execution error, nil on normal completion
func runUpdate(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions()
	if err != nil {
		return err
	}

	if err := preflightFunc(opts.WorkingDir); err != nil {
		return err
	}

	m, err := manifest.Load(opts.WorkingDir)
	if err != nil {
		return err
	}

	ctx := context.Background()
	candidates, err := outdatedFunc(ctx, opts.WorkingDir)
	if err != nil {
		return err
	}

	rep := report.New()
	proc := &update.Processor{Opts: opts, Manifest: m}

	if len(candidates) == 0 {
		fmt.Printf("All %s* packages are up to date.\n", composer.Namespace)
	} else {
		table := buildRunTable(candidates)
		fmt.Println(table.HeaderRow())
		fmt.Println(table.SeparatorRow())

		for _, c := range candidates {
			row, err := proc.Process(ctx, c)
			if err != nil {
				return err
			}
			rep.Append(row)
			printRunRow(table, row)
		}

		updated, skipped, failed := rep.Counts()
		fmt.Printf("\n%d updated, %d skipped, %d failed\n", updated, skipped, failed)
		printHighlights(rep)
	}

	return publishReport(rep, opts)
}

// buildRunTable creates the console table with widths sized from the
// candidate data. The status column is measured while streaming, so it
// reserves room for the longest built-in outcome.
func buildRunTable(candidates []composer.Candidate) *output.Table {
	table := output.NewTable().
		AddColumn("PACKAGE").
		AddColumn("CURRENT").
		AddColumn("LATEST").
		AddColumn("SEVERITY").
		AddColumn("PATCHES").
		AddColumnWithMinWidth("STATUS", len(report.OutcomeDependencyError))

	for _, c := range candidates {
		table.UpdateWidths(c.Name, c.Version, c.Latest, version.SeverityUnknown, "", "")
	}
	return table
}

// printRunRow prints one processed candidate. The status cell is last
// so coloring does not disturb column alignment.
func printRunRow(table *output.Table, row report.Row) {
	fmt.Println(table.FormatRow(
		row.Name,
		row.Current,
		row.Latest,
		version.Severity(row.Current, row.Latest),
		fmt.Sprintf("%d", row.PatchCount),
		output.OutcomeColor(row.Outcome).Sprint(row.Outcome),
	))
}

// printHighlights prints the needs-attention list after the table.
func printHighlights(rep *report.Report) {
	notes := rep.Highlights()
	if len(notes) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(output.Header.Sprint("Needs attention:"))
	for _, note := range notes {
		fmt.Println(output.Warning.Sprint("  " + note))
	}
}

// publishReport writes the Markdown summary to the configured sinks:
// the --output file when set, and the GitHub Actions step summary and
// environment file when running in CI.
func publishReport(rep *report.Report, opts config.Options) error {
	if opts.Output != "" {
		if err := rep.WriteFile(opts.Output); err != nil {
			return err
		}
		logger.Infof("report written to %s", opts.Output)
	}

	if config.IsCI(lookupEnvFunc) {
		if err := rep.WriteGitHub(lookupEnvFunc); err != nil {
			return err
		}
	}

	return nil
}
