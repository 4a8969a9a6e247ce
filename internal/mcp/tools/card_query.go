package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/mcp/tools/types"
	"github.com/roivaz/tcg-mcp/internal/tcgdex"
)

const defaultMaxQueryResults = 50

// CardQueryHandler serves get_card_by_query: it lists the cards matching a
// filter chain, then fetches each full card.
type CardQueryHandler struct {
	Service     CardDataService
	Images      types.ImageOptions
	Concurrency int
	MaxResults  int
	Log         logging.Logger
}

func (h *CardQueryHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	raw := stringArg(args, "query")
	if raw == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	query, err := tcgdex.ParseQuery(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	img, err := imageOptionsArg(args, h.Images)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resumes, err := h.Service.ListCards(ctx, query)
	if err != nil {
		return upstreamFailure(ctx, h.Log, err, "card query failed", "query", raw), nil
	}
	if len(resumes) == 0 {
		h.Log.Info("no cards found for query", "query", raw)
		return listResult(ctx, resumes), nil
	}

	limit := h.MaxResults
	if limit <= 0 {
		limit = defaultMaxQueryResults
	}
	if len(resumes) > limit {
		h.Log.Info("truncating query results", "query", raw, "matched", len(resumes), "limit", limit)
		resumes = resumes[:limit]
	}

	ids := make([]string, 0, len(resumes))
	for _, r := range resumes {
		ids = append(ids, r.ID)
	}
	cards := fetchAll(ctx, h.Log, "get_card_by_query", ids, h.Concurrency, h.Service.GetCard)
	out := make([]map[string]any, 0, len(cards))
	for _, c := range cards {
		out = append(out, types.CardMap(c, img))
	}
	return listResult(ctx, out), nil
}
