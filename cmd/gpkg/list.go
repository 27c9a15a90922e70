package main

import (
	"fmt"
	"sort"

	"github.com/alecthomas/kong"

	"github.com/ghostkellz/grim/internal/integrity"
)

// listCmd prints installed plugin names, one per line, per spec.md §6.
type listCmd struct{}

func (c *listCmd) Run(kctx *kong.Context, app *appContext) error {
	lf, err := integrity.ReadLockfile(app.FS, app.LockfilePath)
	if err != nil {
		if err == integrity.ErrLockfileNotFound {
			return nil
		}
		return err
	}

	names := make([]string, 0, len(lf.Plugins))
	for id := range lf.Plugins {
		names = append(names, id)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(app.Stdout, name)
	}
	return nil
}
