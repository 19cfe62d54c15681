package aici

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/randalmurphal/aicikit/aici/sse"
	"github.com/randalmurphal/aicikit/internal/metrics"
)

// Client talks to one AICI server. Safe for concurrent use; each call
// constructs an independent result and shares no mutable state.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

// New creates a Client from the given configuration.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.normalized()

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Client{cfg: cfg, http: cfg.HTTPClient, log: log}, nil
}

// BaseURL returns the normalized server prefix the client talks to.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// UploadModule transmits the controller artifact at path and returns the
// module identifier assigned by the server, along with size metrics.
//
// A non-200 response fails with *UploadError carrying the status and body
// verbatim. No retry is attempted.
func (c *Client) UploadModule(ctx context.Context, path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}

	metrics.UploadsTotal.Inc()
	metrics.UploadBytesTotal.Add(float64(len(data)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"aici_modules", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload module: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UploadError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	var env uploadEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	mod := &Module{
		ID:           env.Data.ModuleID,
		WasmSize:     env.Data.WasmSize,
		CompiledSize: env.Data.CompiledSize,
	}
	c.log.Info().
		Str("module_id", mod.ID).
		Int64("wasm_size", mod.WasmSize).
		Int64("compiled_size", mod.CompiledSize).
		Msg("module uploaded")

	return mod, nil
}

// Complete executes one generation request and consumes the response stream
// until it closes, the terminal sentinel arrives, or the controller crash
// marker is observed.
//
// A non-200 response fails with *RequestError. An unrecognized stream line
// fails with *sse.FormatError. The crash marker does not fail the call: it
// is recorded in Result.Err so the partially accumulated output can still
// be inspected. There are no retries at any layer.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (*Result, error) {
	req = req.withDefaults()
	start := time.Now()
	log := c.log.With().Str("request_id", uuid.NewString()).Logger()

	body, err := json.Marshal(req.wire())
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	log.Debug().Str("controller", req.Controller).Int("max_tokens", req.MaxTokens).Int("n", req.N).Msg("completion request")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeTransport).Inc()
		return nil, fmt.Errorf("completions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeRequest).Inc()
		return nil, &RequestError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(respBody)}
	}

	res, err := c.consume(req, resp.Body)
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CompletionsTotal.WithLabelValues(outcomeFor(err)).Inc()
		return nil, err
	}

	if res.Err != nil {
		metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeWASM).Inc()
		log.Warn().Err(res.Err).Msg("stream aborted by controller")
	} else {
		metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
		log.Debug().Int("frames", len(res.Events)).Dur("elapsed", time.Since(start)).Msg("completion done")
	}
	return res, nil
}

// consume reads the response body line by line, in arrival order, on the
// calling goroutine.
func (c *Client) consume(req CompletionRequest, body io.Reader) (*Result, error) {
	res := &Result{Request: req}
	dec := sse.NewDecoder()
	acc := NewAccumulator(req.N)

	scanner := bufio.NewScanner(body)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		frame, err := dec.Decode(line)
		if err != nil {
			return nil, err
		}
		if dec.Done() {
			if c.cfg.LogLevel >= LogDeltas {
				fmt.Fprintln(c.cfg.Output, "[DONE]")
			}
			break
		}
		if frame == nil {
			continue
		}

		metrics.FramesTotal.Inc()
		res.Events = append(res.Events, *frame)
		if len(frame.Usage) > 0 {
			res.Usage = frame.Usage
		}

		if stop := acc.Add(*frame); stop {
			break
		}
		c.present(*frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}

	res.Text = acc.Text()
	res.Err = acc.Err()
	return res, nil
}

// present writes live output for choice 0, per the configured verbosity.
// Presentation never alters the returned result.
func (c *Client) present(frame sse.Frame) {
	if c.cfg.LogLevel == LogSilent {
		return
	}
	for _, ch := range frame.Choices {
		if ch.Index != 0 {
			continue
		}
		if c.cfg.LogLevel >= LogDiagnostics {
			if l := strings.TrimRight(ch.Logs, "\n"); l != "" {
				fmt.Fprintln(c.cfg.Output, l)
			}
		} else {
			fmt.Fprint(c.cfg.Output, ch.Text)
		}
	}
}

func outcomeFor(err error) string {
	var fe *sse.FormatError
	if errors.As(err, &fe) {
		return metrics.OutcomeStream
	}
	return metrics.OutcomeTransport
}
