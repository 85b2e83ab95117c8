package update

import (
	"strings"

	"github.com/drupdate/drupdate/pkg/cmdexec"
	"github.com/drupdate/drupdate/pkg/report"
	"github.com/drupdate/drupdate/pkg/version"
)

// LockContainsFunc checks whether the lock file carries a version
// string. Injected so classification is testable without a lock file.
type LockContainsFunc func(target string) (bool, error)

// Classify maps a Composer exit status to an outcome string.
//
// The decision table:
//   - 0: success
//   - 1: ambiguous. A dev-snapshot target or a lock file already
//     carrying the target version counts as success, otherwise error.
//     Independently, the command output is scanned case-insensitively
//     for each declared patch identifier; a match overrides the prior
//     classification with the identifier itself.
//   - 2: dependency-error
//   - anything else: unknown
//
// Exit code 1 is ambiguous because Composer also exits non-zero when a
// previously applied patch fails to reapply during lock reconciliation,
// which is unrelated to the current package. The version and lock
// checks are a best-effort split between "this update failed" and "an
// unrelated patch failed"; the table is preserved as-is for behavior
// compatibility with what CI pipelines already expect.
//
// Parameters:
//   - res: Captured process result of the update attempt
//   - target: Target version for the candidate
//   - patches: Declared patch identifiers for the candidate, may be empty
//   - lockContains: Lock file containment check
//
// Returns:
//   - string: Outcome constant or the matched patch identifier
func Classify(res cmdexec.Result, target string, patches []string, lockContains LockContainsFunc) string {
	switch res.ExitCode {
	case 0:
		return report.OutcomeSuccess

	case 1:
		outcome := report.OutcomeError
		if version.IsDevSnapshot(target) {
			outcome = report.OutcomeSuccess
		} else if ok, err := lockContains(target); err == nil && ok {
			outcome = report.OutcomeSuccess
		}

		if id := matchPatch(res.Combined(), patches); id != "" {
			return id
		}
		return outcome

	case 2:
		return report.OutcomeDependencyError

	default:
		return report.OutcomeUnknown
	}
}

// matchPatch returns the first declared patch identifier that appears
// in the command output, compared case-insensitively. Declaration
// order decides which identifier wins when several match.
func matchPatch(output string, patches []string) string {
	if len(patches) == 0 {
		return ""
	}
	lowered := strings.ToLower(output)
	for _, p := range patches {
		if p == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(p)) {
			return p
		}
	}
	return ""
}
