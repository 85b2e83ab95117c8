package report

import (
	"github.com/sethvargo/go-githubactions"
)

// GitHub Actions output plumbing.
const (
	// EnvVarName is the multi-line workflow variable carrying the table.
	EnvVarName = "UPDATES_TABLE"

	envFileVar     = "GITHUB_ENV"
	summaryFileVar = "GITHUB_STEP_SUMMARY"
)

// WriteGitHub publishes the summary to the GitHub Actions environment:
// the table is appended to the step summary file and exported as a
// multi-line workflow variable through the environment file. Both go
// through the platform's file-command protocol, including the heredoc
// delimiter framing for the variable export.
//
// Either target is skipped silently when its variable is unset, so the
// same code path works in partial CI setups.
//
// Parameters:
//   - lookupEnv: Environment lookup, normally os.LookupEnv
//
// Returns:
//   - error: Always nil; write failures on configured targets are
//     fatal inside the file-command layer
func (r *Report) WriteGitHub(lookupEnv func(string) (string, bool)) error {
	action := githubactions.New(githubactions.WithGetenv(func(key string) string {
		value, _ := lookupEnv(key)
		return value
	}))
	md := r.Markdown()

	if path, ok := lookupEnv(summaryFileVar); ok && path != "" {
		action.AddStepSummary(md)
	}

	if path, ok := lookupEnv(envFileVar); ok && path != "" {
		action.SetEnv(EnvVarName, md)
	}

	return nil
}
