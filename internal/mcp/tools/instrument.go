package tools

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/metrics"
)

// ToolAdapter is implemented by every tool handler.
type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type outcomeKey struct{}

// markOutcome records how the current call ended. The first non-ok outcome wins.
func markOutcome(ctx context.Context, outcome string) {
	if p, ok := ctx.Value(outcomeKey{}).(*string); ok && *p == metrics.OutcomeOK {
		*p = outcome
	}
}

// Instrument wraps adapter with a per-call id, logging and metrics.
func Instrument(name string, log logging.Logger, adapter ToolAdapter) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		callLog := log.WithValues("tool", name, "call_id", uuid.NewString())
		outcome := metrics.OutcomeOK
		ctx = context.WithValue(ctx, outcomeKey{}, &outcome)

		callLog.Debug("tool call", "arguments", req.GetArguments())
		result, err := adapter.ToolAdapter(ctx, req)
		switch {
		case err != nil:
			outcome = metrics.OutcomeUpstreamErr
			callLog.Error(err, "tool call failed")
		case result != nil && result.IsError:
			markOutcome(ctx, metrics.OutcomeInvalidInput)
		}
		metrics.ObserveToolCall(name, outcome, start)
		callLog.Info("tool call finished", "outcome", outcome, "elapsed", time.Since(start))
		return result, err
	}
}
