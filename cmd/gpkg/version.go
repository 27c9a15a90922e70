package main

import (
	"fmt"

	"github.com/alecthomas/kong"
)

// gpkgVersion is the CLI's own version string, independent of any
// installed plugin's version.
const gpkgVersion = "0.1.0"

type versionCmd struct{}

func (c *versionCmd) Run(kctx *kong.Context, app *appContext) error {
	fmt.Fprintln(app.Stdout, "gpkg "+gpkgVersion)
	return nil
}
