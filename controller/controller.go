// Package controller handles local controller artifacts: loading the WASM
// binary that gets uploaded to the server, building the opaque argument
// string the controller consumes, and watching the artifact for rebuilds
// during development.
//
// The client never interprets the artifact or the argument; both are opaque
// beyond their bytes.
package controller

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is a controller binary read from disk.
type Artifact struct {
	Path string
	Data []byte
}

// Load reads the controller artifact at path.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("artifact %s is empty", path)
	}
	return &Artifact{Path: path, Data: data}, nil
}

// Size returns the artifact size in bytes.
func (a *Artifact) Size() int64 {
	return int64(len(a.Data))
}

// Arg serializes v to the JSON string passed as the controller argument.
// The server forwards it to the controller unchanged.
func Arg(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal controller arg: %w", err)
	}
	return string(data), nil
}
