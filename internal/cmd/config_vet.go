package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obsi2/bundler/internal/cmdutil"
	"github.com/obsi2/bundler/internal/config"
	oerrors "github.com/obsi2/bundler/internal/errors"
	"github.com/obsi2/bundler/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(gc *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the obsi-bundle configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Merged configuration satisfies the schema

The config path is resolved using precedence:
  --config flag > OBSI_BUNDLE_CONFIG env > ./obsi-bundle.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, gc)
		},
	}
}

func runConfigVet(c *cobra.Command, gc *config.GlobalConfig) error {
	path := gc.ConfigPath
	output.Debug("validating config", "path", path, "source", gc.ConfigSource)

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return oerrors.FromFS(err, "checking config file", path)
	}
	if !exists {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: path,
			Hint:     "Run 'obsi-bundle config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}
	w := c.OutOrStdout()
	cmdutil.Fprintln(w, output.FormatVetCheck("Config file found", path))

	if gc.LoadErr != nil {
		return fmt.Errorf("parsing config file: %w", gc.LoadErr)
	}
	cmdutil.Fprintln(w, output.FormatVetCheck("YAML parsed", ""))

	if _, err := cmdutil.RequireConfig(gc); err != nil {
		return err
	}
	cmdutil.Fprintln(w, output.FormatVetCheck("Schema validation passed", ""))

	return nil
}
