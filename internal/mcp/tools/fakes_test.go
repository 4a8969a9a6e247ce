package tools

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/tcg-mcp/internal/justtcg"
	"github.com/roivaz/tcg-mcp/internal/tcgdex"
)

var errUpstream = errors.New("upstream unavailable")

type fakeCardData struct {
	mu        sync.Mutex
	values    map[tcgdex.ValueEndpoint][]string
	series    []tcgdex.SerieResume
	sets      []tcgdex.SetResume
	resumes   []tcgdex.CardResume
	cards     map[string]*tcgdex.Card
	setByID   map[string]*tcgdex.Set
	serieByID map[string]*tcgdex.Serie
	failIDs   map[string]bool
	listErr   error
	lastQuery *tcgdex.Query
	cardCalls int
}

func (f *fakeCardData) ListValues(ctx context.Context, endpoint tcgdex.ValueEndpoint) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.values[endpoint], nil
}

func (f *fakeCardData) ListSeries(ctx context.Context) ([]tcgdex.SerieResume, error) {
	return f.series, f.listErr
}

func (f *fakeCardData) ListSets(ctx context.Context) ([]tcgdex.SetResume, error) {
	return f.sets, f.listErr
}

func (f *fakeCardData) ListCards(ctx context.Context, q *tcgdex.Query) ([]tcgdex.CardResume, error) {
	f.lastQuery = q
	return f.resumes, f.listErr
}

func (f *fakeCardData) GetCard(ctx context.Context, id string) (*tcgdex.Card, error) {
	f.mu.Lock()
	f.cardCalls++
	f.mu.Unlock()
	if f.failIDs[id] {
		return nil, errUpstream
	}
	return f.cards[id], nil
}

func (f *fakeCardData) GetSet(ctx context.Context, id string) (*tcgdex.Set, error) {
	if f.failIDs[id] {
		return nil, errUpstream
	}
	return f.setByID[id], nil
}

func (f *fakeCardData) GetSerie(ctx context.Context, id string) (*tcgdex.Serie, error) {
	if f.failIDs[id] {
		return nil, errUpstream
	}
	return f.serieByID[id], nil
}

type fakePricing struct {
	games     []json.RawMessage
	err       error
	lastGame  string
	lastQuery justtcg.CardQuery
	lastBatch []justtcg.BatchItem
}

func (f *fakePricing) ListGames(ctx context.Context) ([]json.RawMessage, error) {
	return f.games, f.err
}

func (f *fakePricing) ListSets(ctx context.Context, game string) ([]json.RawMessage, error) {
	f.lastGame = game
	return f.games, f.err
}

func (f *fakePricing) GetCards(ctx context.Context, q justtcg.CardQuery) ([]json.RawMessage, error) {
	f.lastQuery = q
	return f.games, f.err
}

func (f *fakePricing) GetCardsBatch(ctx context.Context, items []justtcg.BatchItem) ([]json.RawMessage, error) {
	f.lastBatch = items
	return f.games, f.err
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("expected content in result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func decodeList(t *testing.T, res *mcp.CallToolResult) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return out
}
