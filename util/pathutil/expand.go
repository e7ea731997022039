package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// Expand expands the home directory (~) and environment variables in a path.
// Variables are resolved through env, which defaults to the process environment
// when nil. It returns an absolute path.
func Expand(path string, env func(string) string) (string, error) {
	if env == nil {
		env = os.Getenv
	}

	// 1. Expand home directory character '~'.
	if path == HomeMarker || strings.HasPrefix(path, HomeMarker+"/") {
		home := env("HOME")
		if home == "" {
			return "", fmt.Errorf("could not expand %q: HOME is not set", path)
		}
		path = filepath.Join(home, path[len(HomeMarker):])
	}

	// 2. Expand environment variables ($VAR, ${VAR}, ${VAR:-default}).
	expanded, err := shell.Expand(path, env)
	if err != nil {
		return "", fmt.Errorf("could not expand %q: %w", path, err)
	}

	return filepath.Abs(expanded)
}

// ExpandHome expands only a leading '~' against home, leaving the rest of the
// path untouched. Used for patterns, where shell expansion would mangle globs.
func ExpandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == HomeMarker || strings.HasPrefix(path, HomeMarker+"/") {
		return filepath.Join(home, path[len(HomeMarker):])
	}
	return path
}
