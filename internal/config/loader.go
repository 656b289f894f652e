package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for bundler configuration.
const envPrefix = "OBSI_BUNDLE"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader with every default
// registered, so environment overrides apply to all known keys.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("root", def.Root)
	v.SetDefault("namespace", def.Namespace)
	v.SetDefault("extension", def.Extension)
	v.SetDefault("output", def.Output)
	v.SetDefault("minified", def.Minified)
	v.SetDefault("manifest", def.Manifest)
	v.SetDefault("exclude", def.Exclude)
	v.SetDefault("licenses", def.Licenses)
	v.SetDefault("onDuplicate", def.OnDuplicate)
	v.SetDefault("followSymlinks", def.FollowSymlinks)
	v.SetDefault("sort", def.Sort)

	_ = v.BindEnv("log.timestamps", "OBSI_BUNDLE_LOG_TIMESTAMPS")

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error; defaults and environment apply.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = GetConfigFile()
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Source reports where the value for key came from, ignoring flags.
func (l *Loader) Source(key string) ConfigSource {
	env := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if _, ok := os.LookupEnv(env); ok {
		return SourceEnv
	}
	if l.v.InConfig(key) {
		return SourceConfig
	}
	return SourceDefault
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		configFile = GetConfigFile()
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
