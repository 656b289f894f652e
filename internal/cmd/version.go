package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obsi2/bundler/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show obsi-bundle version information.

Displays:
  - obsi-bundle version, commit, and build date
  - CUE SDK version used for config validation`,
		RunE: runVersion,
	}
}

func runVersion(c *cobra.Command, _ []string) error {
	info := version.Get()
	w := c.OutOrStdout()

	fmt.Fprintf(w, "obsi-bundle version %s\n", info.Version)
	fmt.Fprintf(w, "  Commit:    %s\n", info.GitCommit)
	fmt.Fprintf(w, "  Built:     %s\n", info.BuildDate)
	fmt.Fprintf(w, "  Go:        %s\n", info.GoVersion)
	fmt.Fprintf(w, "  CUE SDK:   %s\n", info.CUESDKVersion)

	return nil
}
