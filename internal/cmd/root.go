// Package cmd provides CLI command implementations.
package cmd

import (
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/obsi2/bundler/internal/config"
	"github.com/obsi2/bundler/internal/output"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	config     string
	root       string
	namespace  string
	output     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for obsi-bundle.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	gc := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "obsi-bundle",
		Short: "Bundle a Lua source tree into a single preload file",
		Long: `obsi-bundle walks a Lua source tree and writes every module into one
artifact as package.preload registrations, followed by a statement that
invokes the namespace root's preload entry. License texts are appended to the bundle and
to the minified placeholder.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, &flags, gc)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: OBSI_BUNDLE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flags.root, "root", "", "Source tree to bundle (env: OBSI_BUNDLE_ROOT)")
	rootCmd.PersistentFlags().StringVar(&flags.namespace, "namespace", "", "Namespace root for module names (env: OBSI_BUNDLE_NAMESPACE)")
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "", "Bundle artifact path (env: OBSI_BUNDLE_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewBuildCmd(gc),
		NewBundleCmd(gc),
		NewLicenseCmd(gc),
		NewListCmd(gc),
		NewDiffCmd(gc),
		NewConfigCmd(gc),
		NewVersionCmd(),
	)

	return rootCmd
}

// initializeGlobals loads configuration, applies flag overrides and sets
// up logging.
func initializeGlobals(cmd *cobra.Command, flags *rootFlags, gc *config.GlobalConfig) error {
	pathResult := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: flags.config,
	})

	loader := config.NewLoader()
	cfg, err := loader.Load(pathResult.ConfigPath)
	if err != nil {
		// Don't fail here; commands that need config report LoadErr.
		output.Debug("config load error", "error", err)
		gc.LoadErr = err
		cfg = config.DefaultConfig()
	}

	// An explicitly named config file must exist.
	if pathResult.Source != config.SourceDefault && gc.LoadErr == nil {
		exists, statErr := config.ConfigFileExists(pathResult.ConfigPath)
		if statErr == nil && !exists {
			gc.LoadErr = &fs.PathError{Op: "open", Path: pathResult.ConfigPath, Err: fs.ErrNotExist}
		}
	}

	values := config.Resolve(cfg, loader, config.FlagOverrides{
		Root:      flags.root,
		Namespace: flags.namespace,
		Output:    flags.output,
	})

	gc.Config = cfg
	gc.ConfigPath = pathResult.ConfigPath
	gc.ConfigSource = pathResult.Source
	gc.Verbose = flags.verbose

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if flags.verbose {
		output.Debug("initializing CLI",
			"config", pathResult.ConfigPath,
			"config_source", pathResult.Source,
		)
		config.LogResolvedValues(values)
	}

	return nil
}
