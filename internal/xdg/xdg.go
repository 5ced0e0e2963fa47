// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package xdg provides XDG Base Directory paths for evcompress.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "evcompress"

// ConfigDir returns the XDG config directory for evcompress.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ExistingConfigFile returns ConfigFile if it exists, or "" otherwise.
func ExistingConfigFile() string {
	path := ConfigFile()
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return ""
	}
	return path
}
