package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/mcp/tools/types"
)

// GetCardsByIDHandler serves get_card_by_id.
type GetCardsByIDHandler struct {
	Service     CardDataService
	Images      types.ImageOptions
	Concurrency int
	Log         logging.Logger
}

func (h *GetCardsByIDHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	ids, err := stringSliceArg(args, "card_ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	img, err := imageOptionsArg(args, h.Images)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cards := fetchAll(ctx, h.Log, "get_card_by_id", ids, h.Concurrency, h.Service.GetCard)
	out := make([]map[string]any, 0, len(cards))
	for _, c := range cards {
		out = append(out, types.CardMap(c, img))
	}
	return listResult(ctx, out), nil
}

// GetSetsByIDHandler serves get_set_by_id.
type GetSetsByIDHandler struct {
	Service     CardDataService
	Images      types.ImageOptions
	Concurrency int
	Log         logging.Logger
}

func (h *GetSetsByIDHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	ids, err := stringSliceArg(args, "set_ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	img, err := imageOptionsArg(args, h.Images)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sets := fetchAll(ctx, h.Log, "get_set_by_id", ids, h.Concurrency, h.Service.GetSet)
	h.Log.Info("fetched sets", "requested", len(ids), "found", len(sets))
	out := make([]map[string]any, 0, len(sets))
	for _, s := range sets {
		out = append(out, types.SetMap(s, img))
	}
	return listResult(ctx, out), nil
}

// GetSeriesByIDHandler serves get_serie_by_id.
type GetSeriesByIDHandler struct {
	Service     CardDataService
	Images      types.ImageOptions
	Concurrency int
	Log         logging.Logger
}

func (h *GetSeriesByIDHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	ids, err := stringSliceArg(args, "serie_ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	img, err := imageOptionsArg(args, h.Images)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	series := fetchAll(ctx, h.Log, "get_serie_by_id", ids, h.Concurrency, h.Service.GetSerie)
	h.Log.Info("fetched series", "requested", len(ids), "found", len(series))
	out := make([]map[string]any, 0, len(series))
	for _, s := range series {
		out = append(out, types.SerieMap(s, img))
	}
	return listResult(ctx, out), nil
}
