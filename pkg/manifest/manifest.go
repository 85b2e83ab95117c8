// Package manifest reads the Composer manifest and lock file of the
// project being updated. It exposes the declared per-package patch lists
// (composer-patches extra.patches metadata) and a verbatim version
// containment check against the lock file.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// Manifest and lock file names, relative to the project directory.
const (
	File     = "composer.json"
	LockFile = "composer.lock"
)

// Manifest holds the patch metadata extracted from composer.json.
//
// Patch identifiers keep the declaration order from the manifest: the
// ordered map parse guarantees the first declared patch is scanned
// first when classifying ambiguous update failures.
type Manifest struct {
	// patches maps the lowercased package name to its declared patch
	// identifiers (the patch URLs/paths) in declaration order.
	patches map[string][]string
}

// Load reads composer.json from dir and extracts patch metadata.
//
// It performs the following operations:
//   - Step 1: Read and decode composer.json preserving key order
//   - Step 2: Walk extra.patches when present
//   - Step 3: Collect each package's patch values in declaration order
//
// A manifest without an extra section or without patches yields an
// empty (but usable) Manifest; only unreadable or malformed JSON is an
// error.
//
// Parameters:
//   - dir: Project directory containing composer.json
//
// Returns:
//   - *Manifest: Parsed patch metadata
//   - error: Non-nil when the manifest is missing or malformed
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, File)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	root := orderedmap.New()
	if err := root.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	m := &Manifest{patches: map[string][]string{}}

	extra, ok := nestedMap(root.Get("extra"))
	if !ok {
		return m, nil
	}
	patches, ok := nestedMap(extra.Get("patches"))
	if !ok {
		return m, nil
	}

	for _, pkg := range patches.Keys() {
		entry, ok := nestedMap(patches.Get(pkg))
		if !ok {
			continue
		}
		var ids []string
		for _, desc := range entry.Keys() {
			if v, ok := entry.Get(desc); ok {
				if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
					ids = append(ids, s)
				}
			}
		}
		if len(ids) > 0 {
			m.patches[strings.ToLower(pkg)] = ids
		}
	}

	return m, nil
}

// nestedMap extracts an ordered map from a Get result.
func nestedMap(v interface{}, ok bool) (orderedmap.OrderedMap, bool) {
	if !ok {
		return orderedmap.OrderedMap{}, false
	}
	o, ok := v.(orderedmap.OrderedMap)
	return o, ok
}

// Patches returns the declared patch identifiers for a package.
//
// Lookup is case-insensitive, matching Composer's own package name
// handling. Packages without declared patches return nil.
//
// Parameters:
//   - name: Namespaced package name
//
// Returns:
//   - []string: Patch identifiers in declaration order, or nil
func (m *Manifest) Patches(name string) []string {
	if m == nil {
		return nil
	}
	return m.patches[strings.ToLower(name)]
}

// LockContains reports whether the lock file mentions the version as a
// quoted JSON value.
//
// This is the disambiguation check for exit code 1: a failing update
// invocation may still have written the target version to the lock file
// when the failure was an unrelated patch reapplication.
//
// Parameters:
//   - dir: Project directory containing composer.lock
//   - target: Version string to look for
//
// Returns:
//   - bool: true when the quoted version appears in the lock file
//   - error: Non-nil when the lock file cannot be read
func LockContains(dir, target string) (bool, error) {
	path := filepath.Join(dir, LockFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return strings.Contains(string(data), `"`+target+`"`), nil
}
