// Package sse decodes the line-oriented server-sent-event stream produced
// by AICI completion endpoints.
//
// Each frame is a single line of the form "data: {...}" carrying a JSON
// payload; the stream ends with the literal sentinel "data: [DONE]". Blank
// lines are SSE framing and carry no data. The decoder is a pure state
// machine over lines: it performs no I/O, which keeps the wire protocol
// independently testable.
package sse

import (
	"encoding/json"
	"fmt"
)

const (
	dataPrefix   = "data: "
	framePrefix  = "data: {"
	doneSentinel = "data: [DONE]"
)

// Choice is one incremental generation slot within a frame.
type Choice struct {
	// Index identifies the parallel generation this delta belongs to.
	Index int `json:"index"`

	// Text is the incremental text delta for this choice.
	Text string `json:"text"`

	// Logs carries diagnostic output from the controller. It may embed
	// error markers; interpretation is the caller's concern.
	Logs string `json:"logs"`

	// FinishReason is set on the final frame of a choice, if the server
	// reports one.
	FinishReason string `json:"finish_reason,omitempty"`
}

// Frame is one decoded data frame.
type Frame struct {
	Choices []Choice `json:"choices"`

	// Usage is the server's usage report, passed through verbatim.
	// Typically only present on later frames.
	Usage json.RawMessage `json:"usage,omitempty"`
}

// FormatError reports a line that matches neither a data frame, the DONE
// sentinel, nor SSE framing. The stream cannot be resynchronized after one.
type FormatError struct {
	Line string // the offending line, verbatim
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("bad response line: %s", e.Line)
}

type state int

const (
	stateStreaming state = iota
	stateTerminated
)

// Decoder decodes stream lines one at a time.
// The zero value is ready to use.
type Decoder struct {
	state state
}

// NewDecoder creates a decoder in the streaming state.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode consumes one line (without its trailing newline) and returns the
// frame it carries, if any.
//
// Blank lines and the DONE sentinel return (nil, nil); after the sentinel
// Done reports true. Any other line that is not a data frame returns a
// *FormatError. Decode must not be called again after Done or an error.
func (d *Decoder) Decode(line string) (*Frame, error) {
	if d.state == stateTerminated {
		return nil, nil
	}
	switch {
	case line == "":
		return nil, nil

	case line == doneSentinel:
		d.state = stateTerminated
		return nil, nil

	case hasFramePrefix(line):
		var frame Frame
		if err := json.Unmarshal([]byte(line[len(dataPrefix):]), &frame); err != nil {
			return nil, fmt.Errorf("decode frame: %w", err)
		}
		return &frame, nil

	default:
		return nil, &FormatError{Line: line}
	}
}

// Done reports whether the terminal sentinel has been observed.
func (d *Decoder) Done() bool {
	return d.state == stateTerminated
}

func hasFramePrefix(line string) bool {
	return len(line) >= len(framePrefix) && line[:len(framePrefix)] == framePrefix
}
