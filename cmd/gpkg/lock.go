package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/ghostkellz/grim/internal/integrity"
	"github.com/ghostkellz/grim/internal/pluginhost"
)

// lockCmd regenerates the lockfile from the installed plugin tree,
// recomputing every plugin's content hash from disk.
type lockCmd struct{}

func (c *lockCmd) Run(kctx *kong.Context, app *appContext) error {
	lockGuard, err := integrity.AcquireLock(app.LockfilePath)
	if err != nil {
		return err
	}
	defer lockGuard.Release()

	entries, err := afero.ReadDir(app.FS, app.PluginsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return integrity.NewLockfile().Write(app.FS, app.LockfilePath)
		}
		return err
	}

	existing, err := integrity.ReadLockfile(app.FS, app.LockfilePath)
	if err != nil && err != integrity.ErrLockfileNotFound {
		return err
	}

	lf := integrity.NewLockfile()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		dir := filepath.Join(app.PluginsDir, id)
		manifest, err := pluginhost.LoadManifestFromDir(dir)
		if err != nil {
			fmt.Fprintf(app.Stderr, "gpkg: lock: skipping %s: %v\n", id, err)
			continue
		}
		hash, err := integrity.ContentHash(app.FS, dir)
		if err != nil {
			return err
		}

		source := ""
		kind := "local"
		if existing != nil {
			if prior, ok := existing.Plugins[id]; ok {
				source = prior.Source
				kind = prior.Kind
			}
		}

		lf.Plugins[id] = integrity.LockEntry{
			ID:           manifest.ID,
			Version:      manifest.Version,
			ContentHash:  hash,
			Source:       source,
			Kind:         kind,
			Dependencies: manifest.Dependencies,
			UpdatedAt:    nowMillis(),
		}
	}

	return lf.Write(app.FS, app.LockfilePath)
}
