package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/tcg-mcp/internal/config"
	"github.com/roivaz/tcg-mcp/internal/justtcg"
	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/mcp/tools"
	"github.com/roivaz/tcg-mcp/internal/mcp/tools/types"
	"github.com/roivaz/tcg-mcp/internal/tcgdex"
)

type Config struct {
	ToolAdapters map[string]tools.ToolAdapter
	Options      []server.StreamableHTTPOption
	Logger       logging.Logger
}

// AdapterSettings tunes the card-data handlers.
type AdapterSettings struct {
	Images          types.ImageOptions
	Concurrency     int
	MaxQueryResults int
}

// DefaultConfig wires the vendor clients from the loaded configuration.
func DefaultConfig(log logging.Logger) Config {
	cardData := tcgdex.NewClient(tcgdex.Config{
		BaseURL:   config.TCGdexBaseURL(),
		Language:  config.TCGdexLanguage(),
		Timeout:   config.HTTPTimeout(),
		CacheSize: config.CacheSize(),
		CacheTTL:  config.CacheTTL(),
		Logger:    log,
	})

	var pricing tools.PricingService
	pricingClient := justtcg.NewClient(justtcg.Config{
		BaseURL:           config.JustTCGBaseURL(),
		APIKey:            config.JustTCGAPIKey(),
		Timeout:           config.HTTPTimeout(),
		RequestsPerSecond: config.JustTCGRatePerSecond(),
		Burst:             config.JustTCGBurst(),
		BatchLimit:        config.JustTCGBatchLimit(),
		Logger:            log,
	})
	if pricingClient.Enabled() {
		pricing = pricingClient
	} else {
		log.Info("JUSTTCG_API_KEY is not set, pricing tools are disabled")
	}

	images, err := types.ImageOptions{Quality: config.ImageQuality(), Format: config.ImageFormat()}.Normalize()
	if err != nil {
		log.Error(err, "invalid default image options, using low/png")
		images = types.DefaultImageOptions()
	}

	return Config{
		ToolAdapters: ToolAdapters(cardData, pricing, AdapterSettings{
			Images:          images,
			Concurrency:     config.FanoutConcurrency(),
			MaxQueryResults: config.MaxQueryResults(),
		}, log.WithName("tools")),
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath(EndpointPath),
			server.WithStateLess(true),
		},
		Logger: log,
	}
}

// ToolAdapters builds the handler of every tool. The pricing tools are only
// included when pricing is non-nil.
func ToolAdapters(cardData tools.CardDataService, pricing tools.PricingService, settings AdapterSettings, log logging.Logger) map[string]tools.ToolAdapter {
	values := func(endpoint tcgdex.ValueEndpoint) tools.ToolAdapter {
		return &tools.ListValuesHandler{Service: cardData, Endpoint: endpoint, Log: log}
	}

	adapters := map[string]tools.ToolAdapter{
		"get_available_types":           values(tcgdex.Types),
		"get_available_rarities":        values(tcgdex.Rarities),
		"get_available_trainerTypes":    values(tcgdex.TrainerTypes),
		"get_available_energyTypes":     values(tcgdex.EnergyTypes),
		"get_available_stages":          values(tcgdex.Stages),
		"get_available_regulationMarks": values(tcgdex.RegulationMarks),
		"get_available_categories":      values(tcgdex.Categories),
		"get_available_illustrators":    values(tcgdex.Illustrators),
		"get_available_series":          &tools.ListSeriesHandler{Service: cardData, Images: settings.Images, Log: log},
		"get_available_sets":            &tools.ListSetsHandler{Service: cardData, Images: settings.Images, Log: log},
		"get_card_by_id":                &tools.GetCardsByIDHandler{Service: cardData, Images: settings.Images, Concurrency: settings.Concurrency, Log: log},
		"get_set_by_id":                 &tools.GetSetsByIDHandler{Service: cardData, Images: settings.Images, Concurrency: settings.Concurrency, Log: log},
		"get_serie_by_id":               &tools.GetSeriesByIDHandler{Service: cardData, Images: settings.Images, Concurrency: settings.Concurrency, Log: log},
		"get_card_by_query": &tools.CardQueryHandler{
			Service:     cardData,
			Images:      settings.Images,
			Concurrency: settings.Concurrency,
			MaxResults:  settings.MaxQueryResults,
			Log:         log,
		},
	}

	if pricing != nil {
		adapters["get_pricing_games"] = &tools.PricingGamesHandler{Service: pricing, Log: log}
		adapters["get_pricing_sets"] = &tools.PricingSetsHandler{Service: pricing, Log: log}
		adapters["get_card_prices"] = &tools.CardPricesHandler{Service: pricing, Log: log}
		adapters["get_card_prices_batch"] = &tools.CardPricesBatchHandler{Service: pricing, Log: log}
	}
	return adapters
}
