// Package preflight validates run prerequisites before any Composer
// invocation: the composer binary must be on PATH and the project must
// carry both a manifest and a lock file.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/drupdate/drupdate/pkg/composer"
	"github.com/drupdate/drupdate/pkg/manifest"
)

// lookPath is swappable in tests.
var lookPath = exec.LookPath

// Check verifies the run prerequisites in dir.
//
// It performs the following operations:
//   - Step 1: Resolve the composer binary via PATH
//   - Step 2: Verify composer.json exists
//   - Step 3: Verify composer.lock exists
//
// Failures here are fatal setup errors: nothing has been attempted yet
// and every later step depends on these inputs.
//
// Parameters:
//   - dir: Project directory
//
// Returns:
//   - error: First missing prerequisite, or nil when all are present
func Check(dir string) error {
	if _, err := lookPath(composer.Binary); err != nil {
		return fmt.Errorf("required command not found: %s (install Composer: https://getcomposer.org/download/)", composer.Binary)
	}

	for _, name := range []string{manifest.File, manifest.LockFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("required file not found: %s", path)
		}
	}

	return nil
}
