package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obsi2/bundler/internal/cmdutil"
	"github.com/obsi2/bundler/internal/config"
	"github.com/obsi2/bundler/internal/output"
	"github.com/obsi2/bundler/internal/pipeline"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(gc *config.GlobalConfig) *cobra.Command {
	var wf cmdutil.WalkFlags
	var noManifest bool

	c := &cobra.Command{
		Use:   "build [root]",
		Short: "Bundle the source tree and append licenses",
		Long: `Bundle the source tree and append license texts.

Runs every stage in order:
  1. Write the bundle (package.preload blocks and the entry statement)
  2. Reset the minified placeholder
  3. Write the module manifest next to the bundle
  4. Append license sections to the bundle and the placeholder

Arguments:
  root    Source tree to bundle (default: from config)

Examples:
  # Build with obsi-bundle.yaml from the current directory
  obsi-bundle build

  # Build another tree into another artifact
  obsi-bundle build ./src -o dist/game.lua --namespace game`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c, args, gc, &wf, noManifest)
		},
	}

	wf.AddTo(c)
	c.Flags().BoolVar(&noManifest, "no-manifest", false,
		"Skip writing the module manifest")

	return c
}

func runBuild(c *cobra.Command, args []string, gc *config.GlobalConfig, wf *cmdutil.WalkFlags, noManifest bool) error {
	wf.Apply(c, gc.Config)
	cfg, err := cmdutil.RequireConfig(gc)
	if err != nil {
		return err
	}
	cfg.Root = cmdutil.ResolveRoot(args, cfg)

	opts := pipeline.OptionsFromConfig(cfg)
	if noManifest {
		opts.Manifest = false
	}

	ctx := c.Context()
	var result *pipeline.Result
	err = output.RunWithSpinner(ctx, func() error {
		var runErr error
		result, runErr = pipeline.Run(ctx, opts)
		return runErr
	}, output.WithTitle(fmt.Sprintf("Bundling %s", cfg.Root)))
	if err != nil {
		return err
	}

	modLog := output.ModuleLogger(cfg.Namespace)
	if gc.Verbose {
		cmdutil.WriteModuleLines(modLog, result.Produced.Modules())
	}
	if result.ManifestPath != "" {
		output.Debug("manifest written", "path", result.ManifestPath)
	}

	cmdutil.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf(
		"bundled %d modules into %s (%d licenses)",
		len(result.Produced.Modules()),
		output.StyleNoun.Render(result.Produced.Path()),
		result.Licenses,
	)))
	return nil
}
