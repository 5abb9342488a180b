package bfconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/tapevm/configs"
	"github.com/reusee/tapevm/logs"
)

//go:embed schema.cue
var schema string

var configFileNames = []string{
	"tapevm.cue",
	".tapevm.cue",
}

// ConfigsLoader loads config files from the working directory, the user
// config directory and /etc, in that order of precedence.
func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	paths := findConfigFiles(dirs)
	if len(paths) > 0 {
		logger.Info("config file", "paths", paths)
	}
	return configs.NewLoader(paths, schema)
}

func findConfigFiles(dirs []string) (paths []string) {
	for _, dir := range dirs {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}
