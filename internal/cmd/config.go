package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obsi2/bundler/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(gc *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for obsi-bundle.`,
	}

	c.AddCommand(NewConfigInitCmd(gc))
	c.AddCommand(NewConfigVetCmd(gc))

	return c
}
