package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/randalmurphal/aicikit/aici"
	"github.com/randalmurphal/aicikit/controller"
	"github.com/randalmurphal/aicikit/runfile"
)

// RunCmd runs one completion described by a run file.
type RunCmd struct {
	File   string `arg:"" type:"existingfile" help:"Run file (YAML)"`
	Module string `help:"Controller artifact, overriding the run file" type:"existingfile"`
	Watch  bool   `help:"Re-upload and re-run whenever the controller artifact changes"`
}

// Run executes the run command.
func (c *RunCmd) Run(cli *CLI) error {
	rf, err := runfile.Load(c.File)
	if err != nil {
		return err
	}
	if c.Module != "" {
		rf.Module = c.Module
		rf.Controller = ""
	}
	if c.Watch && rf.Module == "" {
		return errors.New("--watch requires a run file with a local module path")
	}

	client, err := cli.newClient()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runOnce(ctx, client, rf); err != nil {
		if !c.Watch {
			return err
		}
		// In watch mode a failed run is not fatal; wait for the next build.
		fmt.Fprintln(os.Stderr, "run failed:", err)
	}
	if !c.Watch {
		return nil
	}

	for range controller.Watch(ctx, rf.Module) {
		// Skip notifications for artifacts still being written.
		if _, err := controller.Load(rf.Module); err != nil {
			fmt.Fprintln(os.Stderr, "artifact not ready:", err)
			continue
		}
		if err := runOnce(ctx, client, rf); err != nil {
			fmt.Fprintln(os.Stderr, "run failed:", err)
		}
	}
	return nil
}

// runOnce uploads the module if the run file names a local artifact, then
// executes the completion and prints the outcome.
func runOnce(ctx context.Context, client *aici.Client, rf *runfile.RunFile) error {
	controllerID := rf.Controller
	if rf.Module != "" {
		mod, err := client.UploadModule(ctx, rf.Module)
		if err != nil {
			return err
		}
		controllerID = mod.ID
	}

	req, err := rf.Request(controllerID)
	if err != nil {
		return err
	}

	res, err := client.Complete(ctx, req)
	if err != nil {
		return err
	}

	if len(res.Usage) > 0 {
		fmt.Printf("usage: %s\n", res.Usage)
	}
	for i, text := range res.Text {
		fmt.Printf("[%d] %s\n", i, text)
	}
	if res.Err != nil {
		return fmt.Errorf("controller failed: %w", res.Err)
	}
	return nil
}
