package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "obsi-bundle.yaml"

// GetConfigFile returns the config file path.
// If OBSI_BUNDLE_CONFIG is set, it takes precedence.
func GetConfigFile() string {
	if envPath := os.Getenv("OBSI_BUNDLE_CONFIG"); envPath != "" {
		return envPath
	}
	return DefaultConfigFile
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
