package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drupdate/drupdate/pkg/composer"
	"github.com/drupdate/drupdate/pkg/manifest"
	"github.com/drupdate/drupdate/pkg/output"
	"github.com/drupdate/drupdate/pkg/update"
	"github.com/drupdate/drupdate/pkg/version"
)

var outdatedCmd = &cobra.Command{
	Use:   "outdated",
	Short: "List outdated packages and the action a run would take",
	Long: `Enumerate outdated drupal/* packages and show, for each one, whether a
run with the same options would update, require, or skip it. Nothing is
modified.`,
	RunE: runOutdated,
}

// Action labels for the dry enumeration.
const (
	actionUpdate  = "update"
	actionRequire = "require"
	actionSkip    = "skip"
)

// runOutdated lists candidates and their would-be decisions without
// spawning any update process.
//
// Parameters:
//   - cmd: Cobra command instance (unused)
//   - args: Positional arguments (unused)
//
// Returns:
//   - error: Fatal setup or enumeration error
func runOutdated(cmd *cobra.Command, args []string) error {
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

	candidates, err := outdatedFunc(context.Background(), opts.WorkingDir)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		fmt.Printf("All %s* packages are up to date.\n", composer.Namespace)
		return nil
	}

	table := output.NewTable().
		AddColumn("PACKAGE").
		AddColumn("CURRENT").
		AddColumn("LATEST").
		AddColumn("SEVERITY").
		AddColumn("CLASSIFICATION").
		AddColumn("PATCHES").
		AddColumn("ACTION")

	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		action := decisionLabel(update.Decide(c, opts))
		row := []string{
			c.Name,
			c.Version,
			c.Latest,
			version.Severity(c.Version, c.Latest),
			c.LatestStatus,
			fmt.Sprintf("%d", len(m.Patches(c.Name))),
			action,
		}
		table.UpdateWidths(row...)
		rows = append(rows, row)
	}

	fmt.Println(table.HeaderRow())
	fmt.Println(table.SeparatorRow())
	for _, row := range rows {
		fmt.Println(table.FormatRow(row...))
	}
	fmt.Printf("\nTotal packages: %d\n", len(rows))

	return nil
}

// decisionLabel converts a decision into the console action label.
func decisionLabel(d update.Decision) string {
	switch d {
	case update.ApplyRequire:
		return actionRequire
	case update.ApplyUpdate:
		return actionUpdate
	case update.SkipExcluded:
		return actionSkip + " (excluded)"
	case update.SkipCore:
		return actionSkip + " (core disabled)"
	default:
		return actionSkip + " (type mismatch)"
	}
}
