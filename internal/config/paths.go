package config

import (
	"os"
	"path/filepath"

	"github.com/unclog-go/unclog/internal/changelog"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/unclog/config.yml
// - macOS: ~/Library/Application Support/unclog/config.yml
// - Windows: %APPDATA%\unclog\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "unclog", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project config inside a changelog root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, changelog.ConfigFile)
}

// LegacyProjectConfigPath returns the path to the legacy JSON project config.
func LegacyProjectConfigPath(root string) string {
	return filepath.Join(root, changelog.LegacyConfigFile)
}
