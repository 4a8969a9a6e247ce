// Package metrics provides Prometheus metrics for the TCG MCP server.
// They are served at /metrics when the HTTP transport is enabled.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK           = "ok"
	OutcomeEmpty        = "empty"
	OutcomeInvalidInput = "invalid_input"
	OutcomeUpstreamErr  = "upstream_error"
)

var (
	// Tool Metrics
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcgmcp_tool_calls_total",
			Help: "Total number of MCP tool calls by outcome",
		},
		[]string{"tool", "outcome"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tcgmcp_tool_call_duration_seconds",
			Help:    "MCP tool call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	FanoutFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcgmcp_fanout_failures_total",
			Help: "Individual lookups dropped from a batch because they failed or were not found",
		},
		[]string{"tool"},
	)

	// Upstream API Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcgmcp_upstream_requests_total",
			Help: "Total number of requests sent to vendor APIs",
		},
		[]string{"service", "endpoint", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tcgmcp_upstream_request_duration_seconds",
			Help:    "Vendor API request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "endpoint"},
	)

	// Cache Metrics
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcgmcp_cache_lookups_total",
			Help: "TCGdex response cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)
)

// ObserveUpstream records one vendor request. status is the HTTP status code,
// or 0 when the request never got a response.
func ObserveUpstream(service, endpoint string, status int, started time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(service, endpoint, label).Inc()
	UpstreamRequestDuration.WithLabelValues(service, endpoint).Observe(time.Since(started).Seconds())
}

// ObserveToolCall records a finished tool call.
func ObserveToolCall(tool, outcome string, started time.Time) {
	ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(time.Since(started).Seconds())
}
