package aici

import (
	"encoding/json"

	"github.com/randalmurphal/aicikit/aici/sse"
)

// Module describes a controller module accepted by the server.
type Module struct {
	// ID is the opaque identifier assigned by the server. Pass it as
	// CompletionRequest.Controller.
	ID string

	// WasmSize is the size of the uploaded artifact in bytes.
	WasmSize int64

	// CompiledSize is the size after server-side compilation in bytes.
	CompiledSize int64
}

// CompletionRequest configures one generation call.
//
// All fields are passed through to the server unchanged; the client performs
// no validation beyond structural typing. Zero MaxTokens and N take the
// defaults noted on the fields.
type CompletionRequest struct {
	// Prompt is the text to complete.
	Prompt string

	// Controller is the module ID obtained from UploadModule.
	Controller string

	// ControllerArg is an opaque string consumed entirely by the remote
	// controller, typically serialized configuration.
	ControllerArg string

	// Temperature controls sampling randomness. Default 0.
	Temperature float64

	// MaxTokens limits the response length. Default 200.
	MaxTokens int

	// N is the number of parallel generations. Default 1.
	N int
}

// withDefaults returns a copy with zero fields replaced by their defaults.
func (r CompletionRequest) withDefaults() CompletionRequest {
	if r.MaxTokens == 0 {
		r.MaxTokens = 200
	}
	if r.N == 0 {
		r.N = 1
	}
	return r
}

// wireRequest is the JSON body sent to the completions endpoint.
type wireRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	N           int     `json:"n"`
	Temperature float64 `json:"temperature"`
	Stream      bool    `json:"stream"`
	AiciModule  string  `json:"aici_module"`
	AiciArg     string  `json:"aici_arg"`
}

func (r CompletionRequest) wire() wireRequest {
	return wireRequest{
		Prompt:      r.Prompt,
		MaxTokens:   r.MaxTokens,
		N:           r.N,
		Temperature: r.Temperature,
		Stream:      true,
		AiciModule:  r.Controller,
		AiciArg:     r.ControllerArg,
	}
}

// uploadEnvelope is the JSON response of the module upload endpoint.
type uploadEnvelope struct {
	Data struct {
		ModuleID     string `json:"module_id"`
		WasmSize     int64  `json:"wasm_size"`
		CompiledSize int64  `json:"compiled_size"`
	} `json:"data"`
}

// Result is the accumulated outcome of one completion call.
//
// It is mutated incrementally while the stream is consumed and final once
// Complete returns.
type Result struct {
	// Request is the request as sent, with defaults applied.
	Request CompletionRequest

	// Events is the ordered log of every decoded data frame.
	Events []sse.Frame

	// Text holds the concatenated deltas per choice index, in arrival
	// order. Indices never seen remain empty strings.
	Text []string

	// Usage is the last usage object observed in the stream, passed
	// through verbatim. Nil if the server reported none.
	Usage json.RawMessage

	// Err is ErrWASM when the controller crash marker was observed.
	// Accumulation stops at that frame; Text holds only what arrived
	// strictly before it.
	Err error
}
