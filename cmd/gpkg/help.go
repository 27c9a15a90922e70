package main

import "github.com/alecthomas/kong"

// helpCmd prints the top-level help text, mirroring `--help`; the
// subcommand table (spec.md §6) calls for it as an explicit verb too.
type helpCmd struct{}

func (c *helpCmd) Run(kctx *kong.Context) error {
	_, err := kctx.Parse([]string{"--help"})
	return err
}
