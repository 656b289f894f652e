// Package cmdutil provides shared command utilities: flag groups,
// configuration checks and output helpers used by every command.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/obsi2/bundler/internal/config"
)

// WalkFlags holds flags that change how the source tree is walked and
// named (build, bundle, list, diff).
type WalkFlags struct {
	Sort        bool
	OnDuplicate string
}

// AddTo registers the walk flags on the given cobra command.
func (f *WalkFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.Sort, "sort", false,
		"Sort directory listings by name (default: from config)")
	cmd.Flags().StringVar(&f.OnDuplicate, "on-duplicate", "",
		"Duplicate module policy: error or warn (default: from config)")
}

// Apply copies explicitly set flags onto cfg.
func (f *WalkFlags) Apply(cmd *cobra.Command, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cmd.Flags().Changed("sort") {
		cfg.Sort = f.Sort
	}
	if f.OnDuplicate != "" {
		cfg.OnDuplicate = f.OnDuplicate
	}
}

// ResolveRoot returns the source root from command args, falling back to
// the configured root.
func ResolveRoot(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Root
}
