package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/tcg-mcp/internal/justtcg"
	"github.com/roivaz/tcg-mcp/internal/logging"
)

// PricingGamesHandler serves get_pricing_games.
type PricingGamesHandler struct {
	Service PricingService
	Log     logging.Logger
}

func (h *PricingGamesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	games, err := h.Service.ListGames(ctx)
	if err != nil {
		return upstreamFailure(ctx, h.Log, err, "fetching games failed"), nil
	}
	return listResult(ctx, games), nil
}

// PricingSetsHandler serves get_pricing_sets.
type PricingSetsHandler struct {
	Service PricingService
	Log     logging.Logger
}

func (h *PricingSetsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	game := stringArg(req.GetArguments(), "game")
	if game == "" {
		return mcp.NewToolResultError("game parameter is required"), nil
	}
	sets, err := h.Service.ListSets(ctx, game)
	if err != nil {
		return upstreamFailure(ctx, h.Log, err, "fetching sets failed", "game", game), nil
	}
	return listResult(ctx, sets), nil
}

// CardPricesHandler serves get_card_prices.
type CardPricesHandler struct {
	Service PricingService
	Log     logging.Logger
}

func (h *CardPricesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	limit, err := intArg(args, "limit", justtcg.DefaultLimit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	offset, err := intArg(args, "offset", 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if limit < 1 || offset < 0 {
		return mcp.NewToolResultError("limit must be positive and offset must not be negative"), nil
	}

	q := justtcg.CardQuery{
		TCGPlayerID:    stringArg(args, "tcgplayerId"),
		CardID:         stringArg(args, "cardId"),
		VariantID:      stringArg(args, "variantId"),
		Printing:       stringArg(args, "printing"),
		Condition:      stringArg(args, "condition"),
		Game:           stringArg(args, "game"),
		Set:            stringArg(args, "set"),
		OrderBy:        stringArg(args, "order_by"),
		OrderDirection: stringArg(args, "order_direction"),
		Limit:          limit,
		Offset:         offset,
		Search:         stringArg(args, "search_query"),
	}
	if err := q.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cards, err := h.Service.GetCards(ctx, q)
	if err != nil {
		return upstreamFailure(ctx, h.Log, err, "fetching card prices failed"), nil
	}
	return listResult(ctx, cards), nil
}

// CardPricesBatchHandler serves get_card_prices_batch.
type CardPricesBatchHandler struct {
	Service PricingService
	Log     logging.Logger
}

func (h *CardPricesBatchHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := batchItemsArg(req.GetArguments(), "queries")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cards, err := h.Service.GetCardsBatch(ctx, items)
	if err != nil {
		return upstreamFailure(ctx, h.Log, err, "fetching batch card prices failed", "queries", len(items)), nil
	}
	return listResult(ctx, cards), nil
}

func batchItemsArg(args map[string]any, key string) ([]justtcg.BatchItem, error) {
	raw, ok := args[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a list of lookup objects", key)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s must contain at least one lookup", key)
	}
	items := make([]justtcg.BatchItem, 0, len(raw))
	for i, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be an object", key, i)
		}
		item := justtcg.BatchItem{
			TCGPlayerID: stringArg(obj, "tcgplayerId"),
			CardID:      stringArg(obj, "cardId"),
			VariantID:   stringArg(obj, "variantId"),
			Printing:    stringArg(obj, "printing"),
			Condition:   stringArg(obj, "condition"),
		}
		if item.Printing == "" {
			item.Printing = stringArg(obj, "printingId")
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}
