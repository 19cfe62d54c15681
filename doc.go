// Package aicikit provides a Go client for AICI controller servers.
//
// An AICI server executes uploaded WASM controllers that steer token
// generation. aicikit covers the client side of that protocol; each
// subpackage can be used independently:
//
//   - aici: the REST client for module upload and streaming completions
//   - aici/sse: the line-oriented wire decoder for completion streams
//   - controller: local controller artifacts and rebuild watching
//   - runfile: YAML descriptions of completion runs, with JSON Schema
//
// # Quick Start
//
// Upload a controller and run a completion:
//
//	import "github.com/randalmurphal/aicikit/aici"
//
//	client, _ := aici.New(aici.DefaultConfig())
//	mod, _ := client.UploadModule(ctx, "controller.wasm")
//	res, _ := client.Complete(ctx, aici.CompletionRequest{
//	    Prompt:     "Here is a joke:",
//	    Controller: mod.ID,
//	})
//
// Run files for the aici CLI:
//
//	import "github.com/randalmurphal/aicikit/runfile"
//	rf, _ := runfile.Load("run.yaml")
//	req, _ := rf.Request(moduleID)
//
// # Design Philosophy
//
//   - One request, one response stream, consumed in order on the calling
//     goroutine; no retries at any layer
//   - Explicit configuration objects instead of process-wide settings
//   - Typed errors that preserve the server's responses verbatim
//   - Sensible defaults with full configurability
package aicikit
