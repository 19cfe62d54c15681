// aici is a command-line client for AICI controller servers: it uploads
// controller modules and runs completions described by run files.
package main

import (
	"github.com/alecthomas/kong"
)

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("aici"),
		kong.Description("Client for AICI controller servers"),
		kong.UsageOnError(),
	)

	// Config file fills whatever the flags left unset.
	if err := cli.LoadConfigFile(); err != nil {
		ctx.FatalIfErrorf(err)
	}

	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
