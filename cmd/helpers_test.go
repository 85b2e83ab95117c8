package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/drupdate/drupdate/pkg/cmdexec"
	"github.com/drupdate/drupdate/pkg/composer"
	"github.com/drupdate/drupdate/pkg/manifest"
)

// resetFlags restores every root flag to its default and clears the
// changed markers so tests do not leak flag state into each other.
func resetFlags(t *testing.T) {
	t.Helper()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	reset(rootCmd.PersistentFlags())
	reset(rootCmd.Flags())
	t.Cleanup(func() {
		reset(rootCmd.PersistentFlags())
		reset(rootCmd.Flags())
	})
}

// setFlag sets a root flag and marks it as explicitly changed.
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	if f := rootCmd.PersistentFlags().Lookup(name); f != nil {
		require.NoError(t, rootCmd.PersistentFlags().Set(name, value))
		return
	}
	require.NoError(t, rootCmd.Flags().Set(name, value))
}

// stubSeams replaces the run seams with fakes for the duration of the test.
func stubSeams(t *testing.T, candidates []composer.Candidate, outdatedErr error) {
	t.Helper()

	origOutdated := outdatedFunc
	origPreflight := preflightFunc
	origLookup := lookupEnvFunc
	t.Cleanup(func() {
		outdatedFunc = origOutdated
		preflightFunc = origPreflight
		lookupEnvFunc = origLookup
	})

	outdatedFunc = func(ctx context.Context, dir string) ([]composer.Candidate, error) {
		return candidates, outdatedErr
	}
	preflightFunc = func(dir string) error { return nil }
	lookupEnvFunc = func(string) (string, bool) { return "", false }
}

// stubRun replaces the process runner with a fixed result.
func stubRun(t *testing.T, res cmdexec.Result) {
	t.Helper()
	orig := cmdexec.Run
	t.Cleanup(func() { cmdexec.Run = orig })
	cmdexec.Run = func(ctx context.Context, dir, name string, args ...string) (cmdexec.Result, error) {
		return res, nil
	}
}

// writeProject creates a composer.json/composer.lock pair in a temp dir.
func writeProject(t *testing.T, manifestJSON string) string {
	t.Helper()
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, manifest.File), []byte(manifestJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, manifest.LockFile), []byte(`{"packages": []}`), 0644))
	return tmpDir
}
