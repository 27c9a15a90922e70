package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"

	"github.com/ghostkellz/grim/internal/integrity"
	"github.com/ghostkellz/grim/internal/pluginhost"
)

// installCmd installs a single named plugin or, with no name, reinstalls
// every plugin recorded in the lockfile from its recorded source, per
// spec.md §6's command table.
type installCmd struct {
	Name string `arg:"" optional:"" help:"Plugin id to install. Reinstalls every lockfile-listed plugin if omitted."`
	From string `help:"Source directory to install from (plugin development workflow)." type:"path"`
}

func (c *installCmd) Run(kctx *kong.Context, app *appContext) error {
	if c.Name == "" {
		return c.installAll(kctx, app)
	}
	from := c.From
	if from == "" {
		resolved, ok := app.Config.resolveSource(app.FS, c.Name)
		if !ok {
			fmt.Fprintf(app.Stderr, "gpkg: install %s: not found in any registry_dirs and no --from given\n", c.Name)
			kctx.Exit(1)
			return nil
		}
		from = resolved
	}
	if err := installOne(app, c.Name, from); err != nil {
		fmt.Fprintf(app.Stderr, "gpkg: install %s: %v\n", c.Name, err)
		kctx.Exit(2)
		return nil
	}
	fmt.Fprintln(app.Stdout, app.paint(color.New(color.FgGreen), "installed "+c.Name))
	return nil
}

func (c *installCmd) installAll(kctx *kong.Context, app *appContext) error {
	lf, err := integrity.ReadLockfile(app.FS, app.LockfilePath)
	if err != nil {
		if err == integrity.ErrLockfileNotFound {
			fmt.Fprintln(app.Stdout, "gpkg: no lockfile; nothing to install")
			return nil
		}
		kctx.Exit(2)
		return nil
	}

	bar := progressbar.NewOptions(len(lf.Plugins),
		progressbar.OptionSetDescription("installing"),
		progressbar.OptionSetVisibility(app.Color),
	)
	for id, entry := range lf.Plugins {
		if err := installOne(app, id, entry.Source); err != nil {
			fmt.Fprintf(app.Stderr, "gpkg: install %s: %v\n", id, err)
			kctx.Exit(2)
			return nil
		}
		_ = bar.Add(1)
	}
	return nil
}

// installOne copies the plugin tree at sourceDir into the plugins
// directory under name, then records its content hash in the lockfile.
// Acquiring the lockfile lock brackets the whole mutation per spec.md §5.
func installOne(app *appContext, name, sourceDir string) error {
	lock, err := integrity.AcquireLock(app.LockfilePath)
	if err != nil {
		return err
	}
	defer lock.Release()

	dest := filepath.Join(app.PluginsDir, name)
	if err := copyTree(app.FS, sourceDir, dest); err != nil {
		return err
	}

	if _, err := pluginhost.LoadManifestFromDir(dest); err != nil {
		return fmt.Errorf("invalid plugin manifest: %w", err)
	}

	hash, err := integrity.ContentHash(app.FS, dest)
	if err != nil {
		return err
	}

	lf, err := integrity.ReadLockfile(app.FS, app.LockfilePath)
	if err != nil {
		if err != integrity.ErrLockfileNotFound {
			return err
		}
		lf = integrity.NewLockfile()
	}
	lf.Plugins[name] = integrity.LockEntry{
		ID:          name,
		ContentHash: hash,
		Source:      sourceDir,
		Kind:        "local",
		UpdatedAt:   nowMillis(),
	}
	return lf.Write(app.FS, app.LockfilePath)
}

// copyTree recursively copies every regular file under src into dst on
// fsys, preserving relative paths.
func copyTree(fsys afero.Fs, src, dst string) error {
	return afero.Walk(fsys, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fsys.MkdirAll(target, 0o755)
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		return afero.WriteFile(fsys, target, data, info.Mode())
	})
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
