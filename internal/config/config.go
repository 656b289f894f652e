// Package config provides configuration loading and management.
package config

import (
	"path/filepath"
	"slices"

	"github.com/obsi2/bundler/internal/bundle"
	"github.com/obsi2/bundler/internal/license"
	"github.com/obsi2/bundler/internal/walker"
)

// LicenseConfig names one license source appended to the artifacts.
type LicenseConfig struct {
	// Title names the licensed subject in the section header.
	Title string `json:"title" yaml:"title"`

	// Path is the license source file, relative to the working directory.
	Path string `json:"path" yaml:"path"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Config represents the bundler configuration.
// Loaded from obsi-bundle.yaml, validated against the embedded CUE schema.
type Config struct {
	// Root is the source tree to bundle.
	// Env: OBSI_BUNDLE_ROOT, Default: obsi2
	Root string `json:"root" yaml:"root"`

	// Namespace is the namespace root prepended to every module name and
	// required by the entry statement.
	// Env: OBSI_BUNDLE_NAMESPACE, Default: obsi2
	Namespace string `json:"namespace" yaml:"namespace"`

	// Extension is the recognized source-file extension, dot included.
	Extension string `json:"extension" yaml:"extension"`

	// Output is the bundle artifact.
	// Env: OBSI_BUNDLE_OUTPUT, Default: obsi2.lua
	Output string `json:"output" yaml:"output"`

	// Minified is the placeholder artifact seeded with the license block
	// for a later minification step. Empty disables it.
	Minified string `json:"minified" yaml:"minified"`

	// Manifest enables writing <output>.manifest.yaml after each build.
	Manifest bool `json:"manifest" yaml:"manifest"`

	// Exclude lists basenames never traversed. The output and minified
	// basenames are always excluded as well.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude"`

	// Licenses are appended in this order.
	Licenses []LicenseConfig `json:"licenses,omitempty" yaml:"licenses"`

	// OnDuplicate is "error" or "warn".
	OnDuplicate string `json:"onDuplicate" yaml:"onDuplicate"`

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool `json:"followSymlinks" yaml:"followSymlinks"`

	// Sort orders directory listings by name for reproducible bundles.
	Sort bool `json:"sort" yaml:"sort"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log" yaml:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `obsi-bundle config init` and as the loader's defaults.
func DefaultConfig() *Config {
	return &Config{
		Root:           "obsi2",
		Namespace:      "obsi2",
		Extension:      ".lua",
		Output:         "obsi2.lua",
		Minified:       "obsi2.min.lua",
		Manifest:       true,
		Exclude:        []string{"node_modules"},
		Licenses:       DefaultLicenses(),
		OnDuplicate:    string(bundle.DuplicateError),
		FollowSymlinks: true,
	}
}

// DefaultLicenses returns the project license followed by the licenses of
// the bundled third-party code, in the order they are appended.
func DefaultLicenses() []LicenseConfig {
	return []LicenseConfig{
		{Title: "OBSI 2", Path: "LICENSE"},
		{Title: "PIXELBOX", Path: "LICENSES/PIXELBOX"},
		{Title: "NBSTUNES", Path: "LICENSES/NBSTUNES"},
	}
}

// WalkOptions returns the walker options for this configuration.
func (c *Config) WalkOptions() walker.Options {
	excludes := slices.Clone(c.Exclude)
	for _, out := range []string{c.Output, c.Minified} {
		if out == "" {
			continue
		}
		if base := filepath.Base(out); !slices.Contains(excludes, base) {
			excludes = append(excludes, base)
		}
	}

	return walker.Options{
		Extension:      c.Extension,
		Excludes:       excludes,
		HiddenPrefix:   ".",
		FollowSymlinks: c.FollowSymlinks,
		Sort:           c.Sort,
	}
}

// BundleOptions returns the emitter options for this configuration.
func (c *Config) BundleOptions() bundle.Options {
	return bundle.Options{
		Root:        c.Root,
		Namespace:   c.Namespace,
		Walk:        c.WalkOptions(),
		OnDuplicate: bundle.DuplicatePolicy(c.OnDuplicate),
	}
}

// LicenseSections returns the configured license sections in order.
func (c *Config) LicenseSections() []license.Section {
	sections := make([]license.Section, 0, len(c.Licenses))
	for _, l := range c.Licenses {
		sections = append(sections, license.Section{Title: l.Title, Path: l.Path})
	}
	return sections
}
