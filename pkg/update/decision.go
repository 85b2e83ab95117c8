// Package update implements the per-candidate decision table and the
// exit-code classification for Composer update attempts.
//
// Every candidate produces exactly one report row; failures are data,
// never errors. Only the inability to spawn a process at all surfaces
// as an error to the caller.
package update

import (
	logger "github.com/sirupsen/logrus"

	"github.com/drupdate/drupdate/pkg/composer"
	"github.com/drupdate/drupdate/pkg/config"
)

// Decision is the action chosen for one candidate before any process
// is spawned.
type Decision int

const (
	// SkipExcluded: the bare project name is on the exclusion list.
	SkipExcluded Decision = iota

	// SkipCore: core updates are disabled and the candidate belongs to
	// the core family.
	SkipCore

	// SkipType: the candidate's classification does not match the
	// requested update type.
	SkipType

	// ApplyRequire: attempt the update by requiring the exact target
	// version (classification says the update is directly possible).
	ApplyRequire

	// ApplyUpdate: attempt the update by re-resolving the single
	// package within its declared constraint.
	ApplyUpdate
)

// IsSkip reports whether the decision leaves the candidate untouched.
func (d Decision) IsSkip() bool {
	return d == SkipExcluded || d == SkipCore || d == SkipType
}

// Decide applies the decision table to one candidate.
//
// It performs the following operations, first match wins:
//   - Step 1: Exclusion list match on the bare project name
//   - Step 2: Core gate when core updates are disabled
//   - Step 3: Update type filter (all, or exact classification match)
//   - Step 4: Pick the Composer operation from the classification
//
// Parameters:
//   - c: Candidate under consideration
//   - opts: Resolved run options
//
// Returns:
//   - Decision: Action to take for this candidate
func Decide(c composer.Candidate, opts config.Options) Decision {
	if opts.IsExcluded(composer.BareName(c.Name)) {
		return SkipExcluded
	}

	if !opts.Core && composer.IsCore(c.Name) {
		logger.Infof("skipping %s: core updates are disabled", c.Name)
		return SkipCore
	}

	if opts.Type != config.TypeAll && c.LatestStatus != opts.Type {
		return SkipType
	}

	if c.LatestStatus == composer.StatusUpdatePossible {
		return ApplyRequire
	}
	return ApplyUpdate
}
