package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obsi2/bundler/internal/bundle"
	"github.com/obsi2/bundler/internal/cmdutil"
	"github.com/obsi2/bundler/internal/config"
	"github.com/obsi2/bundler/internal/manifest"
	"github.com/obsi2/bundler/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(gc *config.GlobalConfig) *cobra.Command {
	var wf cmdutil.WalkFlags

	c := &cobra.Command{
		Use:   "diff [root]",
		Short: "Compare the tree against the last written manifest",
		Long: `Compare the modules the current tree would register against the
manifest written by the last build.

Modules are reported as added, removed or changed. A module changed when
its source path or content hash differs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c, args, gc, &wf)
		},
	}

	wf.AddTo(c)

	return c
}

func runDiff(c *cobra.Command, args []string, gc *config.GlobalConfig, wf *cmdutil.WalkFlags) error {
	wf.Apply(c, gc.Config)
	cfg, err := cmdutil.RequireConfig(gc)
	if err != nil {
		return err
	}
	cfg.Root = cmdutil.ResolveRoot(args, cfg)

	last, err := manifest.Read(manifest.PathFor(cfg.Output))
	if err != nil {
		return err
	}

	mods, err := bundle.Plan(cfg.BundleOptions())
	if err != nil {
		return err
	}

	result, err := manifest.Diff(last, manifest.FromRegistered(cfg.Namespace, mods), output.IsTTY())
	if err != nil {
		return fmt.Errorf("comparing manifests: %w", err)
	}

	w := c.OutOrStdout()
	if result.IsEmpty() {
		cmdutil.Fprintln(w, output.FormatCheckmark("no changes since last build"))
		return nil
	}

	for _, name := range result.Added {
		cmdutil.Fprintln(w, output.FormatModuleLine(name, output.StatusAdded))
	}
	for _, name := range result.Removed {
		cmdutil.Fprintln(w, output.FormatModuleLine(name, output.StatusRemoved))
	}
	for _, name := range result.Changed {
		cmdutil.Fprintln(w, output.FormatModuleLine(name, output.StatusChanged))
	}
	if result.Report != "" {
		cmdutil.Fprintln(w, result.Report)
	}
	cmdutil.Fprintln(w, output.StyleSummary.Render(result.Summary()))
	return nil
}
