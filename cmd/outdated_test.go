package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drupdate/drupdate/pkg/cmdexec"
	"github.com/drupdate/drupdate/pkg/config"
	"github.com/drupdate/drupdate/pkg/testutil"
	"github.com/drupdate/drupdate/pkg/update"
)

// TestRunOutdatedListsActions tests the dry enumeration.
//
// It verifies:
//   - Every candidate appears with its would-be action
//   - No update process is spawned
func TestRunOutdatedListsActions(t *testing.T) {
	resetFlags(t)
	stubSeams(t, sampleCandidates(), nil)

	var spawned bool
	origRun := cmdexec.Run
	t.Cleanup(func() { cmdexec.Run = origRun })
	cmdexec.Run = func(ctx context.Context, dir, name string, args ...string) (cmdexec.Result, error) {
		spawned = true
		return cmdexec.Result{}, nil
	}

	dir := writeProject(t, `{"name": "acme/site"}`)
	setFlag(t, "directory", dir)

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, runOutdated(nil, nil))
	})

	assert.Contains(t, out, "drupal/core")
	assert.Contains(t, out, actionUpdate)
	assert.Contains(t, out, "drupal/token")
	assert.Contains(t, out, "type mismatch")
	assert.Contains(t, out, "Total packages: 2")
	assert.False(t, spawned, "outdated must not spawn update processes")
}

// TestRunOutdatedSkipLabels tests the skip reason labels.
func TestRunOutdatedSkipLabels(t *testing.T) {
	resetFlags(t)
	stubSeams(t, sampleCandidates(), nil)

	dir := writeProject(t, `{"name": "acme/site"}`)
	setFlag(t, "directory", dir)
	setFlag(t, "core", "false")
	setFlag(t, "exclude", "token")

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, runOutdated(nil, nil))
	})

	assert.Contains(t, out, "core disabled")
	assert.Contains(t, out, "excluded")
}

// TestRunOutdatedRequireAction tests the require label under type all.
func TestRunOutdatedRequireAction(t *testing.T) {
	resetFlags(t)
	stubSeams(t, sampleCandidates(), nil)

	dir := writeProject(t, `{"name": "acme/site"}`)
	setFlag(t, "directory", dir)
	setFlag(t, "type", config.TypeAll)

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, runOutdated(nil, nil))
	})

	assert.Contains(t, out, actionRequire)
}

// TestRunOutdatedNoCandidates tests the up-to-date message.
func TestRunOutdatedNoCandidates(t *testing.T) {
	resetFlags(t)
	stubSeams(t, nil, nil)

	dir := writeProject(t, `{"name": "acme/site"}`)
	setFlag(t, "directory", dir)

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, runOutdated(nil, nil))
	})

	assert.Contains(t, out, "up to date")
}

// TestDecisionLabel tests decision-to-label mapping.
func TestDecisionLabel(t *testing.T) {
	assert.Equal(t, "skip (excluded)", decisionLabel(update.SkipExcluded))
	assert.Equal(t, "skip (core disabled)", decisionLabel(update.SkipCore))
	assert.Equal(t, "skip (type mismatch)", decisionLabel(update.SkipType))
	assert.Equal(t, actionRequire, decisionLabel(update.ApplyRequire))
	assert.Equal(t, actionUpdate, decisionLabel(update.ApplyUpdate))
}
