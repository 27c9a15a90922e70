package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/schollz/progressbar/v3"

	"github.com/ghostkellz/grim/internal/integrity"
)

// updateCmd refreshes every installed plugin by recomputing its content
// hash from the source recorded in its lock entry and reinstalling.
type updateCmd struct{}

func (c *updateCmd) Run(kctx *kong.Context, app *appContext) error {
	lf, err := integrity.ReadLockfile(app.FS, app.LockfilePath)
	if err != nil {
		fmt.Fprintf(app.Stderr, "gpkg: update: %v\n", err)
		kctx.Exit(2)
		return nil
	}

	bar := progressbar.NewOptions(len(lf.Plugins),
		progressbar.OptionSetDescription("updating"),
		progressbar.OptionSetVisibility(app.Color),
	)
	failed := false
	for id, entry := range lf.Plugins {
		if err := installOne(app, id, entry.Source); err != nil {
			fmt.Fprintf(app.Stderr, "gpkg: update %s: %v\n", id, err)
			failed = true
			continue
		}
		_ = bar.Add(1)
	}
	if failed {
		kctx.Exit(2)
	}
	return nil
}
