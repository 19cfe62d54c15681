package main

import (
	"context"
	"fmt"
)

// UploadCmd uploads a controller module and prints its id.
type UploadCmd struct {
	Module string `arg:"" type:"existingfile" help:"Controller artifact (.wasm)"`
}

// Run executes the upload command.
func (c *UploadCmd) Run(cli *CLI) error {
	client, err := cli.newClient()
	if err != nil {
		return err
	}

	mod, err := client.UploadModule(context.Background(), c.Module)
	if err != nil {
		return err
	}

	fmt.Printf("%dkB -> %dkB id:%s\n", mod.WasmSize/1024, mod.CompiledSize/1024, mod.ID)
	return nil
}
