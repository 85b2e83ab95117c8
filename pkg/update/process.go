package update

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/drupdate/drupdate/pkg/cmdexec"
	"github.com/drupdate/drupdate/pkg/composer"
	"github.com/drupdate/drupdate/pkg/config"
	"github.com/drupdate/drupdate/pkg/manifest"
	"github.com/drupdate/drupdate/pkg/report"
)

// Swappable operation seams for tests.
var (
	requireFunc      = composer.Require
	updateFunc       = composer.Update
	lockContainsFunc = manifest.LockContains
)

// Processor runs the decision table and update attempts for a single
// project directory.
//
// Fields:
//   - Opts: Resolved run options
//   - Manifest: Parsed patch metadata for the project
type Processor struct {
	Opts     config.Options
	Manifest *manifest.Manifest
}

// Process handles one candidate to completion and returns its report row.
//
// Skipped candidates never spawn a process. Attempted candidates run
// exactly one Composer operation, chosen by the decision, and the exit
// status is classified into the row outcome. Every candidate yields a
// row; the error return is reserved for the inability to run Composer
// at all, which aborts the run.
//
// Parameters:
//   - ctx: Context for cancellation
//   - c: Candidate to process
//
// Returns:
//   - report.Row: Completed row for the candidate
//   - error: Non-nil only when the update process could not be spawned
func (p *Processor) Process(ctx context.Context, c composer.Candidate) (report.Row, error) {
	row := report.Row{
		Name:       c.Name,
		ReleaseURL: composer.ReleaseURL(c),
		Current:    c.Version,
		Latest:     c.Latest,
		Outcome:    report.OutcomeSkipped,
		PatchCount: len(p.Manifest.Patches(c.Name)),
		Abandoned:  bool(c.Abandoned),
	}

	decision := Decide(c, p.Opts)
	if decision.IsSkip() {
		return row, nil
	}

	var res cmdexec.Result
	var err error
	if decision == ApplyRequire {
		logger.Debugf("requiring %s:%s", c.Name, c.Latest)
		res, err = requireFunc(ctx, p.Opts.WorkingDir, c.Name, c.Latest)
	} else {
		logger.Debugf("updating %s", c.Name)
		res, err = updateFunc(ctx, p.Opts.WorkingDir, c.Name)
	}
	if err != nil {
		return row, err
	}

	row.Outcome = Classify(res, c.Latest, p.Manifest.Patches(c.Name), func(target string) (bool, error) {
		return lockContainsFunc(p.Opts.WorkingDir, target)
	})

	if row.Outcome != report.OutcomeSuccess {
		logger.Warnf("%s: %s (exit code %d)", c.Name, row.Outcome, res.ExitCode)
	}

	return row, nil
}
