package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the per-user config directory.
const AppName = "harvester"

// SearchPaths lists where Find looks for a config file, in order.
func SearchPaths() []string {
	return []string{
		"config.yaml",
		filepath.Join(xdg.ConfigHome, AppName, "config.yaml"),
		filepath.Join("/etc", AppName, "config.yaml"),
	}
}

// Find returns the first existing file among paths, or "" when none exists.
func Find(paths ...string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
