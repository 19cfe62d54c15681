package aici

import (
	"errors"
	"fmt"
)

// ErrWASM is recorded on a Result when a choice's diagnostic logs embed the
// controller crash marker. It is captured into the result rather than
// returned from Complete so callers can inspect the partial output.
var ErrWASM = errors.New("WASM error")

// UploadError reports a non-200 response to a module upload.
type UploadError struct {
	StatusCode int    // HTTP status code
	Status     string // status line, e.g. "500 Internal Server Error"
	Body       string // response body, verbatim
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	return fmt.Sprintf("bad response to module upload: %s: %s", e.Status, e.Body)
}

// RequestError reports a non-200 response to a completion request.
type RequestError struct {
	StatusCode int    // HTTP status code
	Status     string // status line
	Body       string // response body, verbatim
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("bad response to completions: %s: %s", e.Status, e.Body)
}
