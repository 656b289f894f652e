package config

import (
	"os"

	"github.com/obsi2/bundler/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records a configuration value and its source.
type ResolvedValue struct {
	Key    string
	Value  any
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]any
}

// FlagOverrides carries command-line values; empty strings are unset.
type FlagOverrides struct {
	Root      string
	Namespace string
	Output    string
}

// Resolve applies flag overrides to cfg and reports the source of each
// value using precedence: (1) flag, (2) OBSI_BUNDLE_* env, (3) config file,
// (4) built-in default.
func Resolve(cfg *Config, loader *Loader, flags FlagOverrides) []ResolvedValue {
	overrides := []struct {
		key  string
		flag string
		dst  *string
	}{
		{"root", flags.Root, &cfg.Root},
		{"namespace", flags.Namespace, &cfg.Namespace},
		{"output", flags.Output, &cfg.Output},
	}

	var values []ResolvedValue
	for _, o := range overrides {
		rv := ResolvedValue{
			Key:      o.key,
			Value:    *o.dst,
			Source:   loader.Source(o.key),
			Shadowed: make(map[ConfigSource]any),
		}
		if o.flag != "" {
			rv.Shadowed[rv.Source] = *o.dst
			*o.dst = o.flag
			rv.Value = o.flag
			rv.Source = SourceFlag
		}
		values = append(values, rv)
	}

	for _, key := range []string{"extension", "minified", "manifest", "onDuplicate", "followSymlinks", "sort"} {
		values = append(values, ResolvedValue{
			Key:    key,
			Value:  loader.v.Get(key),
			Source: loader.Source(key),
		})
	}

	return values
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) OBSI_BUNDLE_CONFIG env, (3) ./obsi-bundle.yaml
func ResolveConfigPath(opts ResolveConfigPathOptions) ResolveConfigPathResult {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv("OBSI_BUNDLE_CONFIG")

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = DefaultConfigFile
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = DefaultConfigFile
	default:
		result.ConfigPath = DefaultConfigFile
		result.Source = SourceDefault
	}

	return result
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
