package main

import (
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ghostkellz/grim/internal/integrity"
	"github.com/ghostkellz/grim/internal/pluginhost"
)

// infoCmd prints a plugin's manifest metadata plus its detected lockfile
// artifacts (content hash, source, last-update time).
type infoCmd struct {
	Name string `arg:"" help:"Plugin id to inspect."`
}

func (c *infoCmd) Run(kctx *kong.Context, app *appContext) error {
	dir := filepath.Join(app.PluginsDir, c.Name)
	manifest, err := pluginhost.LoadManifestFromDir(dir)
	if err != nil {
		fmt.Fprintf(app.Stderr, "gpkg: info %s: not found\n", c.Name)
		kctx.Exit(1)
		return nil
	}

	fmt.Fprintf(app.Stdout, "id:          %s\n", manifest.ID)
	fmt.Fprintf(app.Stdout, "name:        %s\n", manifest.Name)
	fmt.Fprintf(app.Stdout, "version:     %s\n", manifest.Version)
	fmt.Fprintf(app.Stdout, "author:      %s\n", manifest.Author)
	fmt.Fprintf(app.Stdout, "entry_point: %s\n", manifest.EntryPoint)

	lf, err := integrity.ReadLockfile(app.FS, app.LockfilePath)
	if err != nil {
		return nil
	}
	entry, ok := lf.Plugins[c.Name]
	if !ok {
		return nil
	}
	fmt.Fprintf(app.Stdout, "content_hash: %s\n", entry.ContentHash)
	fmt.Fprintf(app.Stdout, "source:       %s\n", entry.Source)
	fmt.Fprintf(app.Stdout, "updated_at:   %d\n", entry.UpdatedAt)
	return nil
}
