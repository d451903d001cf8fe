// Package config loads application settings from viper and resolves
// filesystem paths in them.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a configured path into an absolute one: a
// leading ~ becomes the home directory, then $VAR references are
// substituted. When the home directory cannot be determined the tilde
// is left as-is.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
