package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/mcp/tools/types"
	"github.com/roivaz/tcg-mcp/internal/tcgdex"
)

// ListValuesHandler serves the get_available_* tools backed by plain string listings.
type ListValuesHandler struct {
	Service  CardDataService
	Endpoint tcgdex.ValueEndpoint
	Log      logging.Logger
}

func (h *ListValuesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	values, err := h.Service.ListValues(ctx, h.Endpoint)
	if err != nil {
		return upstreamFailure(ctx, h.Log, err, "listing values failed", "endpoint", h.Endpoint), nil
	}
	if len(values) == 0 {
		h.Log.Info("no values found", "endpoint", h.Endpoint)
	}
	return listResult(ctx, values), nil
}

type ListSeriesHandler struct {
	Service CardDataService
	Images  types.ImageOptions
	Log     logging.Logger
}

func (h *ListSeriesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series, err := h.Service.ListSeries(ctx)
	if err != nil {
		return upstreamFailure(ctx, h.Log, err, "listing series failed"), nil
	}
	out := make([]map[string]any, 0, len(series))
	for _, s := range series {
		out = append(out, types.SerieResumeMap(s, h.Images))
	}
	return listResult(ctx, out), nil
}

type ListSetsHandler struct {
	Service CardDataService
	Images  types.ImageOptions
	Log     logging.Logger
}

func (h *ListSetsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sets, err := h.Service.ListSets(ctx)
	if err != nil {
		return upstreamFailure(ctx, h.Log, err, "listing sets failed"), nil
	}
	if len(sets) == 0 {
		h.Log.Info("no sets found")
	}
	out := make([]map[string]any, 0, len(sets))
	for _, s := range sets {
		out = append(out, types.SetResumeMap(s, h.Images))
	}
	return listResult(ctx, out), nil
}
