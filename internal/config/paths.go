package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigFile is the project-root config file name.
const DefaultConfigFile = "shellpack.yaml"

// GetConfigFile returns the config file path.
// If SHELLPACK_CONFIG is set, it takes precedence over the project default.
func GetConfigFile() string {
	if envPath := os.Getenv("SHELLPACK_CONFIG"); envPath != "" {
		return envPath
	}
	return DefaultConfigFile
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return homeDir, nil
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}
