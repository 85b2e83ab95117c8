// Package cmd implements the command-line interface for drupdate.
// The root command performs a full update run; the outdated subcommand
// enumerates candidates without touching anything.
package cmd

import (
	"errors"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/drupdate/drupdate/pkg/config"
	"github.com/drupdate/drupdate/pkg/output"
)

var exitFunc = os.Exit

var (
	typeFlag    string
	coreFlag    string
	excludeFlag string
	outputFlag  string
	dirFlag     string
	verboseFlag bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "drupdate",
	Short: "Check and apply Composer updates for Drupal projects",
	Long: `Enumerate outdated drupal/* packages from the Composer lock file,
apply eligible updates one by one, and produce a Markdown change summary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			logger.SetLevel(logger.DebugLevel)
		}
		if noColorFlag {
			output.NoColor()
		}
	},
}

// Execute runs the root command and exits non-zero on failure.
//
// Validation failures print usage; prerequisite and runtime failures
// print the error alone. Per-package update failures never reach this
// path: they are report rows and the run still exits zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrUsage) {
			fmt.Fprint(os.Stderr, rootCmd.UsageString())
		}
		exitFunc(1)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.RunE = runUpdate
	rootCmd.PersistentFlags().StringVarP(&typeFlag, "type", "t", config.TypeSemverSafe, "Update type: semver-safe-update or all")
	rootCmd.PersistentFlags().StringVarP(&coreFlag, "core", "c", "true", "Allow core package updates: true or false")
	rootCmd.PersistentFlags().StringVarP(&excludeFlag, "exclude", "e", "", "Comma-separated project names to skip (without vendor prefix)")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "directory", "d", ".", "Project directory containing composer.json")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	// --output only applies to the update run.
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the Markdown summary to this file (must end in .md)")

	rootCmd.AddCommand(outdatedCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveOptions merges flags, environment, and file defaults into a
// validated option set.
//
// Returns:
//   - config.Options: Validated run configuration
//   - error: Wraps config.ErrUsage on validation failure
func resolveOptions() (config.Options, error) {
	flags := config.Flags{
		Type:    typeFlag,
		Core:    coreFlag,
		Exclude: excludeFlag,
		Output:  outputFlag,
		Dir:     dirFlag,

		TypeSet:    rootCmd.PersistentFlags().Changed("type"),
		CoreSet:    rootCmd.PersistentFlags().Changed("core"),
		ExcludeSet: rootCmd.PersistentFlags().Changed("exclude"),
		OutputSet:  rootCmd.Flags().Changed("output"),
	}
	return config.Resolve(flags, lookupEnvFunc)
}
