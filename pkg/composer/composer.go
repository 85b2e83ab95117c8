// Package composer wraps the Composer invocations drupdate depends on:
// enumerating outdated Drupal packages and applying single-package
// updates. All process execution goes through the cmdexec seam so the
// surrounding decision logic is testable without a Composer install.
package composer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/drupdate/drupdate/pkg/cmdexec"
	"github.com/drupdate/drupdate/pkg/version"
)

// Binary is the package manager executable name.
const Binary = "composer"

// Namespace constants for the Drupal ecosystem.
const (
	// Namespace is the vendor prefix all enumerated packages share.
	Namespace = "drupal/"

	// CorePackage is the base platform package.
	CorePackage = "drupal/core"

	// CorePrefix matches the core package family (core-recommended,
	// core-composer-scaffold, ...).
	CorePrefix = "drupal/core-"

	// DefaultProjectURL is the release link fallback when a package
	// declares no homepage.
	DefaultProjectURL = "https://www.drupal.org"
)

// Classification values Composer reports in latest-status.
const (
	// StatusUpdatePossible means the latest version is outside the
	// declared constraint; installing it needs an explicit require.
	StatusUpdatePossible = "update-possible"

	// StatusSemverSafe means the latest version satisfies the declared
	// constraint and a plain update can install it.
	StatusSemverSafe = "semver-safe-update"
)

// Candidate is one outdated package as reported by composer outdated.
//
// Fields:
//   - Name: Namespaced package name (drupal/token)
//   - Version: Currently locked version
//   - Latest: Latest available version
//   - LatestStatus: Classification of the latest version relative to
//     the declared constraint
//   - Homepage: Project homepage URL, may be empty
//   - Abandoned: Whether upstream marked the package abandoned
type Candidate struct {
	Name         string        `json:"name"`
	Version      string        `json:"version"`
	Latest       string        `json:"latest"`
	LatestStatus string        `json:"latest-status"`
	Homepage     string        `json:"homepage"`
	Abandoned    AbandonedFlag `json:"abandoned"`
}

// AbandonedFlag decodes Composer's abandoned field, which is false, true,
// null, or the name of a suggested replacement package.
type AbandonedFlag bool

// UnmarshalJSON implements json.Unmarshaler for the mixed-type field.
func (a *AbandonedFlag) UnmarshalJSON(data []byte) error {
	switch {
	case string(data) == "null":
		*a = false
	case string(data) == "true":
		*a = true
	case string(data) == "false":
		*a = false
	default:
		// A replacement package name means the package is abandoned.
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unexpected abandoned value %s", data)
		}
		*a = s != ""
	}
	return nil
}

// outdatedPayload matches the composer outdated --format=json envelope.
// The key is "locked" when --locked is passed and "installed" otherwise.
type outdatedPayload struct {
	Locked    []Candidate `json:"locked"`
	Installed []Candidate `json:"installed"`
}

// Outdated enumerates outdated packages in the Drupal namespace.
//
// It runs composer outdated against the lock file, restricted to direct
// dependencies, with platform requirement checks disabled, and decodes
// the JSON result. Candidates are returned in Composer's own order; the
// report preserves that order.
//
// Parameters:
//   - ctx: Context for cancellation
//   - dir: Project directory containing composer.json
//
// Returns:
//   - []Candidate: Outdated packages, possibly empty
//   - error: Non-nil when Composer fails or emits undecodable output
func Outdated(ctx context.Context, dir string) ([]Candidate, error) {
	res, err := cmdexec.Run(ctx, dir, Binary,
		"outdated", Namespace+"*",
		"--locked", "--direct",
		"--format=json",
		"--no-interaction", "--ignore-platform-reqs")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("composer outdated exited with code %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}

	out := strings.TrimSpace(string(res.Stdout))
	if out == "" {
		return nil, nil
	}

	var payload outdatedPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode composer outdated output: %w", err)
	}

	if payload.Locked != nil {
		return payload.Locked, nil
	}
	return payload.Installed, nil
}

// Require installs an exact version of a single package.
//
// Used when Composer classifies the latest version as update-possible:
// the declared constraint does not cover it, so the constraint itself is
// rewritten to the exact target.
//
// Parameters:
//   - ctx: Context for cancellation
//   - dir: Project directory
//   - name: Namespaced package name
//   - target: Exact version to require
//
// Returns:
//   - cmdexec.Result: Captured output and exit code
//   - error: Non-nil only when the command could not run
func Require(ctx context.Context, dir, name, target string) (cmdexec.Result, error) {
	return cmdexec.Run(ctx, dir, Binary,
		"require", name+":"+target,
		"--no-interaction", "--ignore-platform-reqs")
}

// Update re-resolves a single package within its declared constraint.
//
// Parameters:
//   - ctx: Context for cancellation
//   - dir: Project directory
//   - name: Namespaced package name
//
// Returns:
//   - cmdexec.Result: Captured output and exit code
//   - error: Non-nil only when the command could not run
func Update(ctx context.Context, dir, name string) (cmdexec.Result, error) {
	return cmdexec.Run(ctx, dir, Binary,
		"update", name,
		"--no-interaction", "--ignore-platform-reqs")
}

// BareName strips the vendor prefix from a namespaced package name.
//
// Parameters:
//   - name: Namespaced name (drupal/token)
//
// Returns:
//   - string: Project name without vendor (token)
func BareName(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// IsCore reports whether the package belongs to the core family.
//
// Parameters:
//   - name: Namespaced package name
//
// Returns:
//   - bool: true for drupal/core and drupal/core-* packages
func IsCore(name string) bool {
	return name == CorePackage || strings.HasPrefix(name, CorePrefix)
}

// ReleaseURL resolves the release link for a candidate.
//
// Tagged releases link to the project's release page for the target
// version. Development snapshots have no release page, so those link
// to the bare project homepage; packages without a homepage fall back
// to the default project URL.
//
// Parameters:
//   - c: Candidate to link
//
// Returns:
//   - string: Release page URL
func ReleaseURL(c Candidate) string {
	if c.Homepage == "" {
		return DefaultProjectURL
	}
	homepage := strings.TrimSuffix(c.Homepage, "/")
	if version.IsDevSnapshot(c.Latest) {
		return homepage
	}
	return homepage + "/releases/" + c.Latest
}
