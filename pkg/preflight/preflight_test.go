package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drupdate/drupdate/pkg/manifest"
)

// stubLookPath swaps the PATH lookup for the duration of the test.
func stubLookPath(t *testing.T, err error) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		if err != nil {
			return "", err
		}
		return "/usr/bin/" + name, nil
	}
}

// projectDir creates a temp dir holding the given files.
func projectDir(t *testing.T, files ...string) string {
	t.Helper()
	tmpDir := t.TempDir()
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("{}"), 0644))
	}
	return tmpDir
}

// TestCheckAllPresent tests the happy path.
func TestCheckAllPresent(t *testing.T) {
	stubLookPath(t, nil)
	dir := projectDir(t, manifest.File, manifest.LockFile)

	assert.NoError(t, Check(dir))
}

// TestCheckMissingBinary tests the missing composer binary failure.
func TestCheckMissingBinary(t *testing.T) {
	stubLookPath(t, errors.New("not found"))
	dir := projectDir(t, manifest.File, manifest.LockFile)

	err := Check(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "composer")
}

// TestCheckMissingManifest tests the missing composer.json failure.
func TestCheckMissingManifest(t *testing.T) {
	stubLookPath(t, nil)
	dir := projectDir(t, manifest.LockFile)

	err := Check(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), manifest.File)
}

// TestCheckMissingLockFile tests the missing composer.lock failure.
func TestCheckMissingLockFile(t *testing.T) {
	stubLookPath(t, nil)
	dir := projectDir(t, manifest.File)

	err := Check(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), manifest.LockFile)
}
