package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
)

// appContext carries the dependencies every gpkg subcommand needs,
// bound into the kong.Context so each Cmd's Run method can request it by
// type the way up's command tree does.
type appContext struct {
	FS           afero.Fs
	PluginsDir   string
	LockfilePath string
	Config       *config
	Stdout       io.Writer
	Stderr       io.Writer
	Color        bool
}

// newAppContext resolves the data/config directories from the standard
// XDG environment variables (falling back to HOME), matching spec.md
// §6's environment-variable contract.
func newAppContext() (*appContext, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return nil, fmt.Errorf("gpkg: HOME is not set")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs, filepath.Join(configHome, "grim"))
	if err != nil {
		return nil, fmt.Errorf("gpkg: reading gpkg.toml: %w", err)
	}

	return &appContext{
		FS:           fs,
		PluginsDir:   filepath.Join(dataHome, "grim", "plugins"),
		LockfilePath: filepath.Join(configHome, "grim", "grim.lock"),
		Config:       cfg,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Color:        isatty.IsTerminal(os.Stdout.Fd()),
	}, nil
}

// paint applies c only when output is a real terminal, so piped or
// redirected output never carries ANSI escapes.
func (a *appContext) paint(c *color.Color, s string) string {
	if !a.Color {
		return s
	}
	return c.Sprint(s)
}
