package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obsi2/bundler/internal/cmdutil"
	"github.com/obsi2/bundler/internal/config"
	"github.com/obsi2/bundler/internal/output"
	"github.com/obsi2/bundler/internal/pipeline"
)

// NewBundleCmd creates the bundle command.
func NewBundleCmd(gc *config.GlobalConfig) *cobra.Command {
	var wf cmdutil.WalkFlags

	c := &cobra.Command{
		Use:   "bundle [root]",
		Short: "Write the bundle without license sections",
		Long: `Write the bundle, reset the minified placeholder and write the module
manifest. License sections are left to 'obsi-bundle license'.

Examples:
  obsi-bundle bundle
  obsi-bundle bundle ./src --sort`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBundle(c, args, gc, &wf)
		},
	}

	wf.AddTo(c)

	return c
}

func runBundle(c *cobra.Command, args []string, gc *config.GlobalConfig, wf *cmdutil.WalkFlags) error {
	wf.Apply(c, gc.Config)
	cfg, err := cmdutil.RequireConfig(gc)
	if err != nil {
		return err
	}
	cfg.Root = cmdutil.ResolveRoot(args, cfg)

	opts := pipeline.OptionsFromConfig(cfg)
	opts.Licenses = nil

	result, err := pipeline.Run(c.Context(), opts)
	if err != nil {
		return err
	}

	if gc.Verbose {
		cmdutil.WriteModuleLines(output.ModuleLogger(cfg.Namespace), result.Produced.Modules())
	}

	cmdutil.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf(
		"bundled %d modules into %s",
		len(result.Produced.Modules()),
		output.StyleNoun.Render(result.Produced.Path()),
	)))
	return nil
}
