// Package config resolves and validates drupdate run options.
//
// Options come from four layers, lowest precedence first: built-in
// defaults, an optional .drupdate.yml defaults file in the working
// directory, INPUT_* environment variables when running under GitHub
// Actions, and command-line flags that were explicitly set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Update type values accepted by --type.
const (
	// TypeSemverSafe restricts updates to candidates the package manager
	// reports as installable within the declared version constraint.
	TypeSemverSafe = "semver-safe-update"

	// TypeAll attempts every outdated candidate regardless of its
	// reported classification.
	TypeAll = "all"
)

// DefaultsFile is the optional per-project defaults file name.
const DefaultsFile = ".drupdate.yml"

// OutputExtension is the required suffix for the --output path.
const OutputExtension = ".md"

// Environment variables recognized in CI mode.
const (
	EnvCI      = "GITHUB_ACTIONS"
	EnvType    = "INPUT_TYPE"
	EnvCore    = "INPUT_CORE"
	EnvExclude = "INPUT_EXCLUDE"
)

// ErrUsage marks option validation failures. Callers print usage and
// exit non-zero when a returned error matches it.
var ErrUsage = errors.New("invalid options")

// Options is the validated configuration for one run.
//
// Fields:
//   - Type: Update class filter (TypeSemverSafe or TypeAll)
//   - Core: Whether core packages may be updated
//   - Exclude: Bare project names to skip (no vendor prefix)
//   - Output: Optional Markdown output file path ("" disables the file sink)
//   - WorkingDir: Directory holding composer.json and composer.lock
type Options struct {
	Type       string
	Core       bool
	Exclude    []string
	Output     string
	WorkingDir string
}

// Flags carries raw command-line flag values along with markers telling
// whether each flag was explicitly set. Unset flags defer to the
// environment and defaults-file layers.
type Flags struct {
	Type    string
	Core    string
	Exclude string
	Output  string
	Dir     string

	TypeSet    bool
	CoreSet    bool
	ExcludeSet bool
	OutputSet  bool
}

// fileDefaults mirrors the .drupdate.yml schema.
type fileDefaults struct {
	Type    string   `yaml:"type"`
	Core    *bool    `yaml:"core"`
	Exclude []string `yaml:"exclude"`
	Output  string   `yaml:"output"`
}

// Resolve merges defaults, the optional defaults file, CI environment
// variables, and explicit flags into a validated Options value.
//
// It performs the following operations:
//   - Step 1: Start from built-in defaults (semver-safe type, core enabled)
//   - Step 2: Overlay .drupdate.yml from the working directory if present
//   - Step 3: Overlay INPUT_* variables when GITHUB_ACTIONS is truthy
//   - Step 4: Overlay flags that were explicitly set on the command line
//   - Step 5: Validate the merged result
//
// Parameters:
//   - flags: Raw flag values and set markers
//   - lookupEnv: Environment lookup, normally os.LookupEnv
//
// Returns:
//   - Options: Validated run configuration
//   - error: Wraps ErrUsage on validation failure
func Resolve(flags Flags, lookupEnv func(string) (string, bool)) (Options, error) {
	opts := Options{
		Type:       TypeSemverSafe,
		Core:       true,
		WorkingDir: flags.Dir,
	}
	if opts.WorkingDir == "" {
		opts.WorkingDir = "."
	}

	rawType := opts.Type
	rawCore := strconv.FormatBool(opts.Core)
	rawExclude := ""
	rawOutput := ""

	// Layer 2: defaults file.
	if defaults, err := loadDefaultsFile(filepath.Join(opts.WorkingDir, DefaultsFile)); err != nil {
		return Options{}, err
	} else if defaults != nil {
		if defaults.Type != "" {
			rawType = defaults.Type
		}
		if defaults.Core != nil {
			rawCore = strconv.FormatBool(*defaults.Core)
		}
		if len(defaults.Exclude) > 0 {
			rawExclude = strings.Join(defaults.Exclude, ",")
		}
		if defaults.Output != "" {
			rawOutput = defaults.Output
		}
	}

	// Layer 3: CI environment.
	if IsCI(lookupEnv) {
		if v, ok := lookupEnv(EnvType); ok && v != "" {
			rawType = v
		}
		if v, ok := lookupEnv(EnvCore); ok && v != "" {
			rawCore = v
		}
		if v, ok := lookupEnv(EnvExclude); ok && v != "" {
			rawExclude = v
		}
	}

	// Layer 4: explicit flags.
	if flags.TypeSet {
		rawType = flags.Type
	}
	if flags.CoreSet {
		rawCore = flags.Core
	}
	if flags.ExcludeSet {
		rawExclude = flags.Exclude
	}
	if flags.OutputSet {
		rawOutput = flags.Output
	}

	// Validation.
	switch rawType {
	case TypeSemverSafe, TypeAll:
		opts.Type = rawType
	default:
		return Options{}, fmt.Errorf("%w: unknown update type %q (expected %s or %s)", ErrUsage, rawType, TypeSemverSafe, TypeAll)
	}

	core, err := strconv.ParseBool(rawCore)
	if err != nil {
		return Options{}, fmt.Errorf("%w: core must be true or false, got %q", ErrUsage, rawCore)
	}
	opts.Core = core

	opts.Exclude = SplitList(rawExclude)

	if rawOutput != "" && !strings.HasSuffix(rawOutput, OutputExtension) {
		return Options{}, fmt.Errorf("%w: output file must end in %s, got %q", ErrUsage, OutputExtension, rawOutput)
	}
	opts.Output = rawOutput

	return opts, nil
}

// IsCI reports whether the process runs under GitHub Actions.
//
// Parameters:
//   - lookupEnv: Environment lookup, normally os.LookupEnv
//
// Returns:
//   - bool: true when GITHUB_ACTIONS holds a truthy value
func IsCI(lookupEnv func(string) (string, bool)) bool {
	v, ok := lookupEnv(EnvCI)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// IsExcluded reports whether the bare project name appears in the
// exclusion list.
//
// Parameters:
//   - opts: Resolved options
//   - bare: Project name without the vendor prefix
//
// Returns:
//   - bool: true when the name is excluded
func (o Options) IsExcluded(bare string) bool {
	for _, e := range o.Exclude {
		if e == bare {
			return true
		}
	}
	return false
}

// SplitList splits a comma-separated value into trimmed, non-empty items.
//
// Parameters:
//   - raw: Comma-separated input ("" yields nil)
//
// Returns:
//   - []string: Cleaned list entries in input order
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// loadDefaultsFile reads and decodes the optional defaults file.
// A missing file is not an error; a malformed one is fatal so typos do
// not silently fall back to built-in defaults.
func loadDefaultsFile(path string) (*fileDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var defaults fileDefaults
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrUsage, path, err)
	}
	return &defaults, nil
}
