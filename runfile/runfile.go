// Package runfile loads YAML documents that describe one controller run:
// the prompt, which controller to execute, its argument, and the sampling
// parameters. Run files keep demo and development invocations out of shell
// history and make them reproducible.
package runfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/aicikit/aici"
	"github.com/randalmurphal/aicikit/controller"
)

// RunFile describes one completion run against an AICI server.
//
// Exactly one of Module (a local artifact to upload first) or Controller
// (an id already known to the server) must be set.
type RunFile struct {
	// Prompt is the text to complete.
	Prompt string `yaml:"prompt" json:"prompt"`

	// Module is the path of a local controller artifact to upload before
	// the run.
	Module string `yaml:"module,omitempty" json:"module,omitempty"`

	// Controller is the id of a module already uploaded to the server.
	Controller string `yaml:"controller,omitempty" json:"controller,omitempty"`

	// Arg is the controller argument. It is serialized to JSON and passed
	// to the controller unchanged.
	Arg any `yaml:"arg,omitempty" json:"arg,omitempty"`

	// Temperature controls sampling randomness. Default 0.
	Temperature float64 `yaml:"temperature,omitempty" json:"temperature,omitempty"`

	// MaxTokens limits the response length. Default 200.
	MaxTokens int `yaml:"max_tokens,omitempty" json:"max_tokens,omitempty"`

	// N is the number of parallel generations. Default 1.
	N int `yaml:"n,omitempty" json:"n,omitempty"`
}

// Parse decodes a run file from YAML.
func Parse(data []byte) (*RunFile, error) {
	var f RunFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse run file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the run file at path.
func Load(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run file: %w", err)
	}
	return Parse(data)
}

// Validate checks the run file for structural problems.
func (f *RunFile) Validate() error {
	if f.Prompt == "" {
		return fmt.Errorf("run file: prompt is required")
	}
	if f.Module == "" && f.Controller == "" {
		return fmt.Errorf("run file: one of module or controller is required")
	}
	if f.Module != "" && f.Controller != "" {
		return fmt.Errorf("run file: module and controller are mutually exclusive")
	}
	if f.Temperature < 0 {
		return fmt.Errorf("run file: temperature must be >= 0, got %v", f.Temperature)
	}
	if f.MaxTokens < 0 {
		return fmt.Errorf("run file: max_tokens must be >= 0, got %d", f.MaxTokens)
	}
	if f.N < 0 {
		return fmt.Errorf("run file: n must be >= 0, got %d", f.N)
	}
	return nil
}

// ControllerArg serializes Arg to the opaque string the wire format expects.
// Returns "" when Arg is unset.
func (f *RunFile) ControllerArg() (string, error) {
	if f.Arg == nil {
		return "", nil
	}
	return controller.Arg(f.Arg)
}

// Request builds the completion request for this run. controllerID is the
// module id to use: either RunFile.Controller or the id returned by
// uploading RunFile.Module.
func (f *RunFile) Request(controllerID string) (aici.CompletionRequest, error) {
	arg, err := f.ControllerArg()
	if err != nil {
		return aici.CompletionRequest{}, err
	}
	return aici.CompletionRequest{
		Prompt:        f.Prompt,
		Controller:    controllerID,
		ControllerArg: arg,
		Temperature:   f.Temperature,
		MaxTokens:     f.MaxTokens,
		N:             f.N,
	}, nil
}
