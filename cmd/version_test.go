package cmd

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drupdate/drupdate/pkg/testutil"
)

// TestRunVersion tests the version output.
func TestRunVersion(t *testing.T) {
	oldVersion := Version
	oldBuildTime := BuildTime
	oldGitCommit := GitCommit
	defer func() {
		Version = oldVersion
		BuildTime = oldBuildTime
		GitCommit = oldGitCommit
	}()

	Version = "1.2.3"
	BuildTime = "2024-01-01"
	GitCommit = "abc1234"

	out := testutil.CaptureStdout(t, func() {
		runVersion(nil, nil)
	})

	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "abc1234")
	assert.Contains(t, out, runtime.Version())
}

// TestRunVersionOmitsEmptyBuildInfo tests that unset build metadata
// produces no empty lines.
func TestRunVersionOmitsEmptyBuildInfo(t *testing.T) {
	oldBuildTime := BuildTime
	oldGitCommit := GitCommit
	defer func() {
		BuildTime = oldBuildTime
		GitCommit = oldGitCommit
	}()

	BuildTime = ""
	GitCommit = ""

	out := testutil.CaptureStdout(t, func() {
		runVersion(nil, nil)
	})

	assert.NotContains(t, out, "Date:")
	assert.NotContains(t, out, "Git:")
}
