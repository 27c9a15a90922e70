package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/alecthomas/kong"
)

// buildCmd invokes a plugin's native build step in PATH (default "."),
// per spec.md §6. A Zig-toolchain plugin (build.zig present, producing
// the zig-out/ directory the content-hash rule already special-cases)
// is built with `zig build`; a Go-toolchain plugin (go.mod present) is
// built with `go build -buildmode=plugin`, matching the stdlib `plugin`
// package internal/native loads against.
type buildCmd struct {
	Path string `arg:"" optional:"" default:"." help:"Plugin source directory to build."`
}

func (c *buildCmd) Run(kctx *kong.Context, app *appContext) error {
	var cmd *exec.Cmd
	switch {
	case fileExists(filepath.Join(c.Path, "build.zig")):
		cmd = exec.Command("zig", "build")
	case fileExists(filepath.Join(c.Path, "go.mod")):
		cmd = exec.Command("go", "build", "-buildmode=plugin", "-o", "plugin.so", ".")
	default:
		fmt.Fprintf(app.Stderr, "gpkg: build %s: no build.zig or go.mod found\n", c.Path)
		kctx.Exit(2)
		return nil
	}
	cmd.Dir = c.Path
	cmd.Stdout = app.Stdout
	cmd.Stderr = app.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Fprintf(app.Stderr, "gpkg: build %s: %v\n", c.Path, err)
		kctx.Exit(2)
		return nil
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
