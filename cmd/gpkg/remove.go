package main

import (
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/ghostkellz/grim/internal/integrity"
)

// removeCmd deletes a plugin's directory and drops it from the lockfile.
type removeCmd struct {
	Name string `arg:"" help:"Plugin id to remove."`
}

func (c *removeCmd) Run(kctx *kong.Context, app *appContext) error {
	lock, err := integrity.AcquireLock(app.LockfilePath)
	if err != nil {
		return err
	}
	defer lock.Release()

	lf, err := integrity.ReadLockfile(app.FS, app.LockfilePath)
	if err != nil && err != integrity.ErrLockfileNotFound {
		return err
	}
	if lf == nil {
		lf = integrity.NewLockfile()
	}

	if _, ok := lf.Plugins[c.Name]; !ok {
		fmt.Fprintf(app.Stderr, "gpkg: remove %s: not found\n", c.Name)
		kctx.Exit(1)
		return nil
	}

	dir := filepath.Join(app.PluginsDir, c.Name)
	if err := app.FS.RemoveAll(dir); err != nil {
		return err
	}
	delete(lf.Plugins, c.Name)
	if err := lf.Write(app.FS, app.LockfilePath); err != nil {
		return err
	}

	fmt.Fprintln(app.Stdout, app.paint(color.New(color.FgYellow), "removed "+c.Name))
	return nil
}
