// Package pipeline runs a full build: bundle, placeholder, manifest and
// license stages in the order each one depends on.
package pipeline

import (
	"context"
	"os"

	"github.com/obsi2/bundler/internal/bundle"
	"github.com/obsi2/bundler/internal/config"
	oerrors "github.com/obsi2/bundler/internal/errors"
	"github.com/obsi2/bundler/internal/license"
	"github.com/obsi2/bundler/internal/manifest"
	"github.com/obsi2/bundler/internal/output"
)

// Options configures a pipeline run.
type Options struct {
	Bundle bundle.Options

	// Output is the bundle artifact path.
	Output string

	// Minified is the placeholder artifact. Empty skips it.
	Minified string

	// Manifest enables writing the module manifest next to Output.
	Manifest bool

	Licenses []license.Section
}

// OptionsFromConfig builds pipeline options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Bundle:   cfg.BundleOptions(),
		Output:   cfg.Output,
		Minified: cfg.Minified,
		Manifest: cfg.Manifest,
		Licenses: cfg.LicenseSections(),
	}
}

// Result describes the artifacts a run produced.
type Result struct {
	Produced *bundle.Produced

	// ManifestPath is empty when the manifest stage was disabled.
	ManifestPath string

	// Licenses counts the sections appended.
	Licenses int
}

// Run executes the pipeline.
//
// Stage sequence:
//  1. BUNDLE:      bundle.Emit() → *bundle.Produced
//  2. PLACEHOLDER: truncate the minified artifact
//  3. MANIFEST:    manifest.Write() beside the bundle
//  4. LICENSE:     license.Aggregator.Append() to bundle and placeholder
//
// Context cancellation is checked between stages. Artifacts written by
// completed stages are left in place.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	produced, err := bundle.Emit(opts.Output, opts.Bundle)
	if err != nil {
		return nil, &StageError{Stage: StageBundle, Err: err}
	}
	output.Debug("bundle written",
		"path", produced.Path(),
		"modules", len(produced.Modules()),
		"bytes", produced.Size(),
	)

	result := &Result{Produced: produced}

	var extra []string
	if opts.Minified != "" {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := resetPlaceholder(opts.Minified); err != nil {
			return result, &StageError{Stage: StagePlaceholder, Err: err}
		}
		extra = append(extra, opts.Minified)
	}

	if opts.Manifest {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		path := manifest.PathFor(produced.Path())
		m := manifest.FromRegistered(produced.Namespace(), produced.Modules())
		if err := manifest.Write(path, m); err != nil {
			return result, &StageError{Stage: StageManifest, Err: err}
		}
		result.ManifestPath = path
		output.Debug("manifest written", "path", path)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	agg := license.NewAggregator(opts.Licenses, output.ModuleLogger("license"))
	n, err := agg.Append(produced, extra...)
	result.Licenses = n
	if err != nil {
		return result, &StageError{Stage: StageLicense, Err: err}
	}

	return result, nil
}

// resetPlaceholder truncates the placeholder so repeated runs do not
// accumulate license sections.
func resetPlaceholder(path string) error {
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return oerrors.FromFS(err, "resetting minified placeholder", path)
	}
	return nil
}
