package mcp

import (
	"context"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/mcp/tools"
	"github.com/roivaz/tcg-mcp/internal/mcp/tools/types"
)

const (
	ServerName    = "tcg-mcp-server"
	ServerVersion = "1.0.0"
	EndpointPath  = "/mcp/jsonrpc"
)

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
	Tools   []string
}

func New(cfg Config) *Server {
	log := cfg.Logger
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	definitions := ToolDefinitions()
	var registered []string
	for name, adapter := range cfg.ToolAdapters {
		tool, ok := definitions[name]
		if !ok {
			log.Info("skipping adapter without tool definition", "tool", name)
			continue
		}
		mcpServer.AddTool(tool, tools.Instrument(name, log.WithName("tools"), adapter))
		registered = append(registered, name)
	}
	log.Info("registered tools", "count", len(registered))

	opts := cfg.Options
	if len(opts) == 0 {
		opts = []server.StreamableHTTPOption{
			server.WithEndpointPath(EndpointPath),
			server.WithStateLess(true),
		}
	}
	httpServer := server.NewStreamableHTTPServer(mcpServer, opts...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: NewRouter(httpServer, log.WithName("http")),
		Tools:   registered,
	}
}

// ServeStdio runs the server over stdin/stdout until ctx is cancelled or stdin closes.
func (s *Server) ServeStdio(ctx context.Context, log logging.Logger) error {
	stdio := server.NewStdioServer(s.MCP)
	stdio.SetErrorLogger(zap.NewStdLog(log.Zap()))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func imageArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("image_quality",
			mcp.Description("Image quality suffix applied to image URLs (default: low)"),
			mcp.Enum(types.ImageQualities...),
		),
		mcp.WithString("image_format",
			mcp.Description("Image format suffix applied to image URLs (default: png)"),
			mcp.Enum(types.ImageFormats...),
		),
	}
}

func idsTool(name, description, arg, argDescription string) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithArray(arg,
			mcp.Required(),
			mcp.Description(argDescription),
			mcp.Items(map[string]any{"type": "string"}),
		),
	}
	return mcp.NewTool(name, append(opts, imageArgs()...)...)
}

func listTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// ToolDefinitions returns the schema of every tool the server can expose, keyed by name.
func ToolDefinitions() map[string]mcp.Tool {
	queryOpts := []mcp.ToolOption{
		mcp.WithDescription("Search Pokemon TCG cards with a filter chain such as " +
			`Query().equal("name", "Furret").greaterThan("hp", 60).sort("localId", "asc").paginate(1, 10). ` +
			"Methods: equal, notEqual, contains, notContains, greaterOrEqualThan, lessOrEqualThan, " +
			"greaterThan, lessThan, isNull, notNull, sort, paginate. Returns the full card for every match."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description(`Filter chain, e.g. Query().contains("name", "pika").equal("rarity", "Rare")`),
		),
	}

	return map[string]mcp.Tool{
		"get_available_types":           listTool("get_available_types", "List every Pokemon TCG card type (e.g. Fire, Water)."),
		"get_available_rarities":        listTool("get_available_rarities", "List every Pokemon TCG card rarity."),
		"get_available_series":          listTool("get_available_series", "List every Pokemon TCG serie with its id, name and logo."),
		"get_available_sets":            listTool("get_available_sets", "List every Pokemon TCG set with its id, name, logo, symbol and card count."),
		"get_available_trainerTypes":    listTool("get_available_trainerTypes", "List every trainer card type (e.g. Supporter, Item)."),
		"get_available_energyTypes":     listTool("get_available_energyTypes", "List every energy card type (e.g. Basic, Special)."),
		"get_available_stages":          listTool("get_available_stages", "List every Pokemon stage (e.g. Basic, Stage1)."),
		"get_available_regulationMarks": listTool("get_available_regulationMarks", "List every regulation mark."),
		"get_available_categories":      listTool("get_available_categories", "List every card category (Pokemon, Trainer, Energy)."),
		"get_available_illustrators":    listTool("get_available_illustrators", "List every card illustrator."),

		"get_card_by_id": idsTool("get_card_by_id",
			"Fetch full Pokemon TCG cards by id. Ids that cannot be found are left out of the result.",
			"card_ids", "Card ids, e.g. [\"swsh3-136\"]"),
		"get_set_by_id": idsTool("get_set_by_id",
			"Fetch Pokemon TCG sets by id, including their card list. Ids that cannot be found are left out of the result.",
			"set_ids", "Set ids, e.g. [\"swsh3\"]"),
		"get_serie_by_id": idsTool("get_serie_by_id",
			"Fetch Pokemon TCG series by id, including their sets. Ids that cannot be found are left out of the result.",
			"serie_ids", "Serie ids, e.g. [\"swsh\"]"),
		"get_card_by_query": mcp.NewTool("get_card_by_query", append(queryOpts, imageArgs()...)...),

		"get_pricing_games": mcp.NewTool("get_pricing_games",
			mcp.WithDescription("List the trading card games with pricing data, including card and set counts."),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		"get_pricing_sets": mcp.NewTool("get_pricing_sets",
			mcp.WithDescription("List the sets of a game with pricing data."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("game",
				mcp.Required(),
				mcp.Description("Game id as returned by get_pricing_games (e.g. 'pokemon')"),
			),
		),
		"get_card_prices": mcp.NewTool("get_card_prices",
			mcp.WithDescription("Look up cards and their per-condition, per-printing prices. "+
				"Identify a card by tcgplayerId, cardId or variantId, or search by name with search_query."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("tcgplayerId", mcp.Description("TCGplayer product id")),
			mcp.WithString("cardId", mcp.Description("Pricing card id")),
			mcp.WithString("variantId", mcp.Description("Pricing variant id")),
			mcp.WithString("printing", mcp.Description("Printing filter (e.g. 'Normal', 'Holofoil')")),
			mcp.WithString("condition",
				mcp.Description("Condition filter: Sealed, Near Mint, Lightly Played, Moderately Played, Heavily Played, Damaged or S, NM, LP, MP, HP, DMG"),
			),
			mcp.WithString("game", mcp.Description("Game id (e.g. 'pokemon')")),
			mcp.WithString("set", mcp.Description("Set id")),
			mcp.WithString("order_by", mcp.Description("Sort field (e.g. 'price', '24h', '7d', '30d')")),
			mcp.WithString("order_direction",
				mcp.Description("Sort direction"),
				mcp.Enum("asc", "desc"),
			),
			mcp.WithNumber("limit", mcp.Description("Maximum number of cards to return (default: 20)")),
			mcp.WithNumber("offset", mcp.Description("Number of cards to skip (default: 0)")),
			mcp.WithString("search_query", mcp.Description("Free-text card name search")),
		),
		"get_card_prices_batch": mcp.NewTool("get_card_prices_batch",
			mcp.WithDescription("Look up prices for several cards at once. Each query identifies one card by tcgplayerId, cardId or variantId."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithArray("queries",
				mcp.Required(),
				mcp.Description("Lookups, e.g. [{\"tcgplayerId\": \"219053\", \"condition\": \"NM\"}]"),
				mcp.Items(map[string]any{
					"type": "object",
					"properties": map[string]any{
						"tcgplayerId": map[string]any{"type": "string"},
						"cardId":      map[string]any{"type": "string"},
						"variantId":   map[string]any{"type": "string"},
						"printing":    map[string]any{"type": "string"},
						"condition":   map[string]any{"type": "string"},
					},
				}),
			),
		),
	}
}
