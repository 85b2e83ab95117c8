package update

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drupdate/drupdate/pkg/cmdexec"
	"github.com/drupdate/drupdate/pkg/report"
)

func lockWith(versions ...string) LockContainsFunc {
	return func(target string) (bool, error) {
		for _, v := range versions {
			if v == target {
				return true, nil
			}
		}
		return false, nil
	}
}

var emptyLock = lockWith()

// TestClassifyExitZero tests that exit code 0 is always success.
func TestClassifyExitZero(t *testing.T) {
	res := cmdexec.Result{ExitCode: 0}

	assert.Equal(t, report.OutcomeSuccess, Classify(res, "1.12.0", nil, emptyLock))
	// Success even with declared patches and matching output.
	res.Stdout = []byte("applying patches/fix.patch")
	assert.Equal(t, report.OutcomeSuccess, Classify(res, "1.12.0", []string{"patches/fix.patch"}, emptyLock))
}

// TestClassifyExitOneDevSnapshot tests that a dev target resolves the
// ambiguous exit code to success regardless of lock contents.
func TestClassifyExitOneDevSnapshot(t *testing.T) {
	res := cmdexec.Result{ExitCode: 1}

	assert.Equal(t, report.OutcomeSuccess, Classify(res, "dev-main", nil, emptyLock))
	assert.Equal(t, report.OutcomeSuccess, Classify(res, "dev-main", nil, lockWith("dev-main")))
}

// TestClassifyExitOneLockContains tests the lock file disambiguation.
//
// It verifies:
//   - Target present in the lock resolves to success
//   - Target absent resolves to a generic error
//   - A lock read failure falls through to the error outcome
func TestClassifyExitOneLockContains(t *testing.T) {
	res := cmdexec.Result{ExitCode: 1}

	assert.Equal(t, report.OutcomeSuccess, Classify(res, "1.12.0", nil, lockWith("1.12.0")))
	assert.Equal(t, report.OutcomeError, Classify(res, "1.12.0", nil, emptyLock))

	failingLock := func(string) (bool, error) { return false, errors.New("unreadable") }
	assert.Equal(t, report.OutcomeError, Classify(res, "1.12.0", nil, failingLock))
}

// TestClassifyExitOnePatchOverride tests the patch identifier scan.
//
// It verifies:
//   - A patch identifier in the output becomes the outcome
//   - Matching is case-insensitive
//   - The override beats both the error and the success resolution
//   - Declaration order decides between multiple matches
func TestClassifyExitOnePatchOverride(t *testing.T) {
	patches := []string{"patches/first.patch", "patches/second.patch"}

	res := cmdexec.Result{ExitCode: 1, Stdout: []byte("could not apply PATCHES/SECOND.PATCH")}
	assert.Equal(t, "patches/second.patch", Classify(res, "1.12.0", patches, emptyLock))

	// Override applies even when the lock check would have said success.
	assert.Equal(t, "patches/second.patch", Classify(res, "1.12.0", patches, lockWith("1.12.0")))

	// The identifier may appear on stderr instead of stdout.
	res = cmdexec.Result{ExitCode: 1, Stderr: []byte("error in patches/first.patch")}
	assert.Equal(t, "patches/first.patch", Classify(res, "1.12.0", patches, emptyLock))

	// First declared match wins when the output names both.
	res = cmdexec.Result{ExitCode: 1, Stdout: []byte("patches/second.patch then patches/first.patch")}
	assert.Equal(t, "patches/first.patch", Classify(res, "1.12.0", patches, emptyLock))
}

// TestClassifyExitOneNoPatchMatch tests exit 1 with declared patches
// that never appear in the output.
func TestClassifyExitOneNoPatchMatch(t *testing.T) {
	res := cmdexec.Result{ExitCode: 1, Stdout: []byte("some unrelated failure")}
	patches := []string{"patches/fix.patch"}

	assert.Equal(t, report.OutcomeError, Classify(res, "1.12.0", patches, emptyLock))
}

// TestClassifyExitTwo tests that exit code 2 is always a dependency error.
func TestClassifyExitTwo(t *testing.T) {
	res := cmdexec.Result{ExitCode: 2, Stdout: []byte("patches/fix.patch")}

	// No patch scan for exit code 2; the classification is fixed.
	assert.Equal(t, report.OutcomeDependencyError, Classify(res, "1.12.0", []string{"patches/fix.patch"}, emptyLock))
	assert.Equal(t, report.OutcomeDependencyError, Classify(cmdexec.Result{ExitCode: 2}, "dev-main", nil, emptyLock))
}

// TestClassifyUnknownCodes tests the catch-all for unanticipated codes.
func TestClassifyUnknownCodes(t *testing.T) {
	for _, code := range []int{3, 4, 127, 255, -1} {
		res := cmdexec.Result{ExitCode: code}
		assert.Equal(t, report.OutcomeUnknown, Classify(res, "1.12.0", nil, emptyLock), "exit code %d", code)
	}
}
