package config

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every command
// constructor.
type GlobalConfig struct {
	// Config is the merged configuration with flag overrides applied.
	Config *Config

	// ConfigPath is the resolved config file path, which may not exist.
	ConfigPath string

	// ConfigSource records how ConfigPath was chosen.
	ConfigSource ConfigSource

	// LoadErr is set when the config file exists but could not be read.
	// Commands that need the configuration report it; others ignore it.
	LoadErr error

	Verbose bool
}
