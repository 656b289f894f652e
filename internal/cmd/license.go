package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obsi2/bundler/internal/bundle"
	"github.com/obsi2/bundler/internal/cmdutil"
	"github.com/obsi2/bundler/internal/config"
	"github.com/obsi2/bundler/internal/license"
	"github.com/obsi2/bundler/internal/output"
)

// NewLicenseCmd creates the license command.
func NewLicenseCmd(gc *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "license",
		Short: "Append license sections to an existing bundle",
		Long: `Append the configured license sections to the bundle and the minified
placeholder. The bundle must already exist; run 'obsi-bundle bundle' first.
Sections are appended, so running this twice repeats them.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runLicense(c, gc)
		},
	}
}

func runLicense(c *cobra.Command, gc *config.GlobalConfig) error {
	cfg, err := cmdutil.RequireConfig(gc)
	if err != nil {
		return err
	}

	produced, err := bundle.Adopt(cfg.Output, cfg.Namespace)
	if err != nil {
		return err
	}

	var extra []string
	if cfg.Minified != "" {
		extra = append(extra, cfg.Minified)
	}

	agg := license.NewAggregator(cfg.LicenseSections(), output.ModuleLogger("license"))
	n, err := agg.Append(produced, extra...)
	if err != nil {
		return err
	}

	cmdutil.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf(
		"appended %d license sections to %s",
		n, output.StyleNoun.Render(produced.Path()),
	)))
	return nil
}
