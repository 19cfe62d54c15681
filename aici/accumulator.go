package aici

import (
	"strings"

	"github.com/randalmurphal/aicikit/aici/sse"
)

// wasmErrorMarker is the substring the server embeds in a choice's logs when
// the controller has crashed. Matching on log text is a weak signal, but it
// is the wire contract; the protocol has no structured error field.
const wasmErrorMarker = "Previous WASM Error"

// Accumulator demultiplexes decoded frames by choice index and concatenates
// each index's text deltas in arrival order.
//
// Not safe for concurrent use; streams are consumed on a single goroutine.
type Accumulator struct {
	text []string
	err  error
}

// NewAccumulator creates an accumulator pre-sized for n choices.
// Every slot starts as the empty string.
func NewAccumulator(n int) *Accumulator {
	return &Accumulator{text: make([]string, n)}
}

// Add folds one frame into the accumulator and reports whether the stream
// should be treated as terminated.
//
// If any choice's logs embed the controller crash marker, Err is set to
// ErrWASM, nothing from the frame is accumulated, and Add returns true.
// Frames arriving after that are ignored.
func (a *Accumulator) Add(frame sse.Frame) bool {
	if a.err != nil {
		return true
	}
	for _, ch := range frame.Choices {
		if strings.Contains(ch.Logs, wasmErrorMarker) {
			a.err = ErrWASM
			return true
		}
	}
	for _, ch := range frame.Choices {
		a.grow(ch.Index)
		a.text[ch.Index] += ch.Text
	}
	return false
}

// grow extends the slot list with empty strings up to and including idx.
// Indices may arrive non-contiguously, but never negative.
func (a *Accumulator) grow(idx int) {
	for len(a.text) <= idx {
		a.text = append(a.text, "")
	}
}

// Text returns the accumulated text per choice index.
// The returned slice is a copy.
func (a *Accumulator) Text() []string {
	out := make([]string, len(a.text))
	copy(out, a.text)
	return out
}

// Err returns ErrWASM if the crash marker was observed, nil otherwise.
func (a *Accumulator) Err() error {
	return a.err
}
