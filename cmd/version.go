package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/drupdate/drupdate/cmd.Version=1.0.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run:   runVersion,
}

// runVersion prints version and build information to stdout.
func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("  Version: %s\n", Version)
	fmt.Printf("  Go:      %s\n", runtime.Version())
	fmt.Printf("  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if BuildTime != "" {
		fmt.Printf("  Date:    %s\n", BuildTime)
	}
	if GitCommit != "" {
		fmt.Printf("  Git:     %s\n", GitCommit)
	}
}
