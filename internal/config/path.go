// Package config provides configuration helpers for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves ~ and environment variables in a configured path, so
// values like ~/.local/share/tally/tally.db and $HOME/tally.db both work.
func ExpandPath(path string) string {
	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			return os.ExpandEnv(filepath.Join(home, path[2:]))
		}
	}
	return os.ExpandEnv(path)
}
