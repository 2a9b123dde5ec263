// Package config implements the engine's only on-disk concern: XDG-aware
// discovery of the user stopword/delimiter override file (spec.md's
// "Environment / config files" note — "None required; all configuration
// flows through the strategy and the user-override portions of C1").
package config

import (
	"os"
	"path/filepath"
)

// GetAppConfigPaths returns config search paths for appName in priority
// order:
//  1. XDG config dir (~/.config/appName/config.yaml, then config.json)
//  2. Dot-directory in home (~/.appName/config.yaml)
//  3. Dot-file in home (~/.appName.yaml)
//  4. Current directory (./appName.yaml, then ./.appName.yaml)
//
// The home entries are omitted when HOME is unset.
func GetAppConfigPaths(appName string) []string {
	xdg := GetXDGBaseDirs()
	home := os.Getenv("HOME")

	var paths []string

	paths = append(paths,
		filepath.Join(xdg.ConfigHome, appName, "config.yaml"),
		filepath.Join(xdg.ConfigHome, appName, "config.json"),
	)

	if home != "" {
		paths = append(paths,
			filepath.Join(home, "."+appName, "config.yaml"),
			filepath.Join(home, "."+appName+".yaml"),
		)
	}

	paths = append(paths,
		"./"+appName+".yaml",
		"./."+appName+".yaml",
	)

	return paths
}

// FirstExisting returns the first path in paths that exists on disk, or
// "" if none do. Absence of every candidate is not an error: callers
// treat it as "no overrides configured."
func FirstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
