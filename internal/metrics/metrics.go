// Package metrics exposes Prometheus instrumentation for client activity.
// Collectors register on the default registry; embedders that scrape the
// default gatherer pick them up without extra wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aici_module_uploads_total",
		Help: "Total number of controller module uploads attempted",
	})

	UploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aici_module_upload_bytes_total",
		Help: "Total bytes of controller artifacts uploaded",
	})

	CompletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aici_completions_total",
		Help: "Total completion calls by outcome",
	}, []string{"outcome"})

	FramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aici_stream_frames_total",
		Help: "Total data frames decoded from completion streams",
	})

	CompletionDuration = promauto.NewSummary(prometheus.SummaryOpts{
		Name: "aici_completion_duration_seconds",
		Help: "Duration of completion calls including stream consumption",
	})
)

// Outcome labels for CompletionsTotal.
const (
	OutcomeOK        = "ok"
	OutcomeRequest   = "request_error"
	OutcomeStream    = "stream_error"
	OutcomeTransport = "transport_error"
	OutcomeWASM      = "wasm_error"
)
