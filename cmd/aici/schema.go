package main

import (
	"fmt"

	"github.com/randalmurphal/aicikit/runfile"
)

// SchemaCmd prints the JSON Schema for run files.
type SchemaCmd struct{}

// Run executes the schema command.
func (c *SchemaCmd) Run(cli *CLI) error {
	data, err := runfile.Schema()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
