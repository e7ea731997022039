// Package paths provides XDG-compliant path resolution for familiar.
//
// Resolution order:
// 1. $XDG_CONFIG_HOME/familiar
// 2. $HOME/.config/familiar
package paths

import (
	"os"
	"path/filepath"
)

const (
	// AppName names the per-user configuration directory.
	AppName = "familiar"
	// ConfigFileName is the configuration file looked up by default.
	ConfigFileName = "familiar.toml"
)

// ConfigHome returns the base config home directory, or "" when neither
// XDG_CONFIG_HOME nor HOME is set. A nil getenv uses os.Getenv.
func ConfigHome(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	if xdgConfigHome := getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if home := getenv("HOME"); home != "" {
		return filepath.Join(home, ".config")
	}
	return ""
}

// ConfigDir returns the familiar configuration directory.
func ConfigDir(getenv func(string) string) string {
	base := ConfigHome(getenv)
	if base == "" {
		return ""
	}
	return filepath.Join(base, AppName)
}

// DefaultConfigFile returns the path of the default configuration file.
func DefaultConfigFile(getenv func(string) string) string {
	dir := ConfigDir(getenv)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}
