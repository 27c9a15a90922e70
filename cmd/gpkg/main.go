// Command gpkg installs, updates, and removes grim plugins and records
// them in a content-hash lockfile, per spec.md §6's CLI surface. It has
// no command that checks installed plugins against the lockfile.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	Install installCmd `cmd:"" help:"Install a single plugin, or reinstall all lockfile plugins."`
	Update  updateCmd  `cmd:"" help:"Refresh all installed plugins."`
	List    listCmd    `cmd:"" help:"Print installed plugin names, one per line."`
	Remove  removeCmd  `cmd:"" help:"Delete a plugin directory."`
	Build   buildCmd   `cmd:"" help:"Invoke a plugin's native build."`
	Info    infoCmd    `cmd:"" help:"Print plugin metadata and detected artifacts."`
	Lock    lockCmd    `cmd:"" help:"Regenerate the lockfile from the installed tree."`
	Version versionCmd `cmd:"" help:"Print version."`
	Help    helpCmd    `cmd:"" help:"Show help."`
}

func main() {
	app, err := newAppContext()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	c := cli{}
	parser := kong.Must(&c,
		kong.Name("gpkg"),
		kong.Description("Install and manage grim editor plugins."),
	)

	if len(os.Args) == 1 {
		_, err := parser.Parse([]string{"--help"})
		parser.FatalIfErrorf(err)
		return
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	kctx.Bind(app)
	kctx.FatalIfErrorf(kctx.Run())
}
