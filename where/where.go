// Package where resolves the directories and files used by crosswatch.
// Locations follow the XDG base directories on every platform.
package where

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/crosswatch-cli/crosswatch/constant"
	"github.com/crosswatch-cli/crosswatch/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the config directory.
const EnvConfigPath = "CROSSWATCH_CONFIG_PATH"

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok && custom != "" {
		return mkdir(custom)
	}

	return mkdir(filepath.Join(xdg.ConfigHome, constant.Crosswatch))
}

// Cache holds files that can be removed at any time, like the version check.
func Cache() string {
	return mkdir(filepath.Join(xdg.CacheHome, constant.Crosswatch))
}

// State holds files worth keeping between runs that are not configuration.
func State() string {
	return mkdir(filepath.Join(xdg.StateHome, constant.Crosswatch))
}

func Logs() string {
	return mkdir(filepath.Join(State(), "logs"))
}

// Recent is the file of remembered country and service selections.
func Recent() string {
	return filepath.Join(State(), "recent.json")
}
