package main

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// config is gpkg's own per-user settings file, separate from the
// lockfile: a list of local directories searched for a plugin by name
// when install is given a bare NAME with no --from. It lives at
// $XDG_CONFIG_HOME/grim/gpkg.toml, matching the teacher's TOML-based
// editor configuration rather than inventing a second format for what
// is, in spirit, the same kind of file.
type config struct {
	RegistryDirs []string `toml:"registry_dirs"`
}

// loadConfig reads gpkg.toml from dir, returning a zero-value config
// (no registries configured) when the file does not exist.
func loadConfig(fsys afero.Fs, dir string) (*config, error) {
	path := filepath.Join(dir, "gpkg.toml")
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &config{}, nil
		}
		return nil, err
	}
	var cfg config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveSource searches cfg's registry directories for a subdirectory
// named id, returning the first match. Used by installCmd when invoked
// with a bare plugin id and no explicit --from.
func (c *config) resolveSource(fsys afero.Fs, id string) (string, bool) {
	for _, dir := range c.RegistryDirs {
		candidate := filepath.Join(dir, id)
		if ok, _ := afero.DirExists(fsys, candidate); ok {
			return candidate, true
		}
	}
	return "", false
}
