package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/obsi2/bundler/internal/cmdutil"
	"github.com/obsi2/bundler/internal/config"
	oerrors "github.com/obsi2/bundler/internal/errors"
	"github.com/obsi2/bundler/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(gc *config.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write obsi-bundle.yaml with every default spelled out.

The file is written to the resolved config path:
  --config flag > OBSI_BUNDLE_CONFIG env > ./obsi-bundle.yaml

Examples:
  # Initialize configuration
  obsi-bundle config init

  # Overwrite existing configuration
  obsi-bundle config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, gc, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return c
}

func runConfigInit(c *cobra.Command, gc *config.GlobalConfig, force bool) error {
	path := gc.ConfigPath
	if path == "" {
		path = config.DefaultConfigFile
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return oerrors.FromFS(err, "checking config file", path)
	}
	if exists && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}
	if err := os.WriteFile(expanded, data, 0o644); err != nil {
		return oerrors.FromFS(err, "writing config file", expanded)
	}

	cmdutil.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration written to "+output.StyleNoun.Render(expanded)))
	cmdutil.Fprintln(c.OutOrStdout(), "Validate with: obsi-bundle config vet")
	return nil
}
