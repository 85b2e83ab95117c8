// Package version provides helpers for interpreting Composer version strings.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// DevPrefix marks a development snapshot version (e.g. dev-main, dev-2.x).
const DevPrefix = "dev-"

// Severity values describing the distance between two versions.
const (
	SeverityMajor   = "major"
	SeverityMinor   = "minor"
	SeverityPatch   = "patch"
	SeverityNone    = "none"
	SeverityUnknown = "unknown"
)

// IsDevSnapshot reports whether v names a development snapshot rather
// than a tagged release.
//
// Parameters:
//   - v: Version string as reported by the package manager
//
// Returns:
//   - bool: true when v starts with the dev- marker
func IsDevSnapshot(v string) bool {
	return strings.HasPrefix(strings.TrimSpace(v), DevPrefix)
}

// canonical converts a Composer version into the v-prefixed form that
// golang.org/x/mod/semver expects.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "v")
	return "v" + v
}

// Severity classifies how far latest is from current.
//
// It performs the following operations:
//   - Step 1: Canonicalize both versions to v-prefixed semver
//   - Step 2: Return SeverityUnknown when either is not valid semver
//     (dev snapshots, date-based versions)
//   - Step 3: Compare major, then major.minor, then full versions
//
// Non-semver input is never an error: the severity is advisory display
// data, not part of the update decision.
//
// Parameters:
//   - current: Installed version
//   - latest: Latest available version
//
// Returns:
//   - string: One of the Severity constants
func Severity(current, latest string) string {
	c := canonical(current)
	l := canonical(latest)

	if !semver.IsValid(c) || !semver.IsValid(l) {
		return SeverityUnknown
	}

	if semver.Major(c) != semver.Major(l) {
		return SeverityMajor
	}
	if semver.MajorMinor(c) != semver.MajorMinor(l) {
		return SeverityMinor
	}
	if semver.Compare(c, l) != 0 {
		return SeverityPatch
	}
	return SeverityNone
}
