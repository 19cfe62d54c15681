package runfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `
prompt: "Here is a joke:"
module: ./controller.wasm
arg:
  guidance_b64: "aGVsbG8="
temperature: 0.5
max_tokens: 100
n: 2
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if f.Prompt != "Here is a joke:" {
		t.Errorf("Prompt = %q", f.Prompt)
	}
	if f.Module != "./controller.wasm" {
		t.Errorf("Module = %q", f.Module)
	}
	if f.Temperature != 0.5 {
		t.Errorf("Temperature = %v", f.Temperature)
	}
	if f.MaxTokens != 100 {
		t.Errorf("MaxTokens = %d", f.MaxTokens)
	}
	if f.N != 2 {
		t.Errorf("N = %d", f.N)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing prompt", "module: a.wasm"},
		{"missing controller and module", `prompt: hi`},
		{"both controller and module", "prompt: hi\nmodule: a.wasm\ncontroller: mod-1"},
		{"negative temperature", "prompt: hi\nmodule: a.wasm\ntemperature: -1"},
		{"negative max_tokens", "prompt: hi\nmodule: a.wasm\nmax_tokens: -5"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Prompt == "" {
		t.Error("Load() returned empty prompt")
	}
}

func TestControllerArg(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	arg, err := f.ControllerArg()
	if err != nil {
		t.Fatalf("ControllerArg() error = %v", err)
	}
	if arg != `{"guidance_b64":"aGVsbG8="}` {
		t.Errorf("ControllerArg() = %q", arg)
	}
}

func TestControllerArg_Unset(t *testing.T) {
	f := &RunFile{Prompt: "hi", Controller: "mod-1"}

	arg, err := f.ControllerArg()
	if err != nil {
		t.Fatalf("ControllerArg() error = %v", err)
	}
	if arg != "" {
		t.Errorf("ControllerArg() = %q, want empty", arg)
	}
}

func TestRequest(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	req, err := f.Request("mod-xyz")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if req.Controller != "mod-xyz" {
		t.Errorf("Controller = %q", req.Controller)
	}
	if req.Prompt != f.Prompt {
		t.Errorf("Prompt = %q", req.Prompt)
	}
	if req.ControllerArg == "" {
		t.Error("ControllerArg should be serialized")
	}
	if req.N != 2 {
		t.Errorf("N = %d", req.N)
	}
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("Schema() is not valid JSON: %v", err)
	}
	if !strings.Contains(string(data), `"prompt"`) {
		t.Error("schema should describe the prompt field")
	}
}
