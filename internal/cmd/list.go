package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obsi2/bundler/internal/bundle"
	"github.com/obsi2/bundler/internal/cmdutil"
	"github.com/obsi2/bundler/internal/config"
	"github.com/obsi2/bundler/internal/output"
)

// NewListCmd creates the list command.
func NewListCmd(gc *config.GlobalConfig) *cobra.Command {
	var wf cmdutil.WalkFlags

	c := &cobra.Command{
		Use:   "list [root]",
		Short: "List the modules a bundle would register",
		Long: `List the modules a bundle of the current tree would register, in
emission order, without writing any artifact.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runList(c, args, gc, &wf)
		},
	}

	wf.AddTo(c)

	return c
}

func runList(c *cobra.Command, args []string, gc *config.GlobalConfig, wf *cmdutil.WalkFlags) error {
	wf.Apply(c, gc.Config)
	cfg, err := cmdutil.RequireConfig(gc)
	if err != nil {
		return err
	}
	cfg.Root = cmdutil.ResolveRoot(args, cfg)

	mods, err := bundle.Plan(cfg.BundleOptions())
	if err != nil {
		return err
	}

	cmdutil.Fprintln(c.OutOrStdout(), output.RenderModuleTable(cmdutil.ModuleRows(mods)))
	return nil
}
