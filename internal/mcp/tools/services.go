package tools

import (
	"context"
	"encoding/json"

	"github.com/roivaz/tcg-mcp/internal/justtcg"
	"github.com/roivaz/tcg-mcp/internal/tcgdex"
)

// CardDataService is the TCGdex surface the card-data tools need.
type CardDataService interface {
	ListValues(ctx context.Context, endpoint tcgdex.ValueEndpoint) ([]string, error)
	ListSeries(ctx context.Context) ([]tcgdex.SerieResume, error)
	ListSets(ctx context.Context) ([]tcgdex.SetResume, error)
	ListCards(ctx context.Context, q *tcgdex.Query) ([]tcgdex.CardResume, error)
	GetCard(ctx context.Context, id string) (*tcgdex.Card, error)
	GetSet(ctx context.Context, id string) (*tcgdex.Set, error)
	GetSerie(ctx context.Context, id string) (*tcgdex.Serie, error)
}

// PricingService is the JustTCG surface the pricing tools need.
type PricingService interface {
	ListGames(ctx context.Context) ([]json.RawMessage, error)
	ListSets(ctx context.Context, game string) ([]json.RawMessage, error)
	GetCards(ctx context.Context, q justtcg.CardQuery) ([]json.RawMessage, error)
	GetCardsBatch(ctx context.Context, items []justtcg.BatchItem) ([]json.RawMessage, error)
}
