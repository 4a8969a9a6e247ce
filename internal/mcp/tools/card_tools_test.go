package tools

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/mcp/tools/types"
	"github.com/roivaz/tcg-mcp/internal/tcgdex"
)

func testCard(id, name string) *tcgdex.Card {
	return &tcgdex.Card{
		CardResume: tcgdex.CardResume{ID: id, LocalID: "1", Name: name, Image: "https://assets.tcgdex.net/en/swsh/swsh3/" + id},
		Category:   "Pokemon",
	}
}

func TestListValuesHandler(t *testing.T) {
	svc := &fakeCardData{values: map[tcgdex.ValueEndpoint][]string{
		tcgdex.Types: {"Fire", "Water"},
	}}
	h := &ListValuesHandler{Service: svc, Endpoint: tcgdex.Types, Log: logging.Discard()}

	res, err := h.ToolAdapter(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, res); got != `["Fire","Water"]` {
		t.Fatalf("unexpected result %s", got)
	}

	h.Endpoint = tcgdex.Rarities
	res, _ = h.ToolAdapter(context.Background(), callRequest(nil))
	if got := resultText(t, res); got != "[]" {
		t.Fatalf("expected empty list for empty listing, got %s", got)
	}
}

func TestListHandlersReturnEmptyOnUpstreamError(t *testing.T) {
	svc := &fakeCardData{listErr: errUpstream}
	handlers := map[string]ToolAdapter{
		"values": &ListValuesHandler{Service: svc, Endpoint: tcgdex.Stages, Log: logging.Discard()},
		"series": &ListSeriesHandler{Service: svc, Images: types.DefaultImageOptions(), Log: logging.Discard()},
		"sets":   &ListSetsHandler{Service: svc, Images: types.DefaultImageOptions(), Log: logging.Discard()},
		"query":  &CardQueryHandler{Service: svc, Images: types.DefaultImageOptions(), Log: logging.Discard()},
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			res, err := h.ToolAdapter(context.Background(), callRequest(map[string]any{"query": `Query().equal("name", "Furret")`}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.IsError {
				t.Fatalf("upstream failure should not be a tool error")
			}
			if got := resultText(t, res); got != "[]" {
				t.Fatalf("expected [], got %s", got)
			}
		})
	}
}

func TestListSetsHandlerAppliesImageOptions(t *testing.T) {
	svc := &fakeCardData{sets: []tcgdex.SetResume{
		{ID: "swsh3", Name: "Darkness Ablaze", Logo: "https://assets.tcgdex.net/en/swsh/swsh3/logo", CardCount: tcgdex.CardCount{Total: 201, Official: 189}},
	}}
	h := &ListSetsHandler{Service: svc, Images: types.ImageOptions{Quality: "high", Format: "webp"}, Log: logging.Discard()}

	res, _ := h.ToolAdapter(context.Background(), callRequest(nil))
	out := decodeList(t, res)
	if len(out) != 1 {
		t.Fatalf("expected one set, got %d", len(out))
	}
	if out[0]["logo"] != "https://assets.tcgdex.net/en/swsh/swsh3/logo/high.webp" {
		t.Fatalf("unexpected logo %v", out[0]["logo"])
	}
}

func TestGetCardsByIDSkipsMissingAndKeepsOrder(t *testing.T) {
	svc := &fakeCardData{
		cards: map[string]*tcgdex.Card{
			"swsh3-136": testCard("swsh3-136", "Furret"),
			"swsh3-1":   testCard("swsh3-1", "Butterfree V"),
			"swsh3-2":   testCard("swsh3-2", "Butterfree VMAX"),
		},
		failIDs: map[string]bool{"broken": true},
	}
	h := &GetCardsByIDHandler{Service: svc, Images: types.DefaultImageOptions(), Concurrency: 2, Log: logging.Discard()}

	res, err := h.ToolAdapter(context.Background(), callRequest(map[string]any{
		"card_ids": []any{"swsh3-2", "missing", "swsh3-136", "broken", "swsh3-1"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := decodeList(t, res)
	var names []string
	for _, c := range out {
		names = append(names, c["name"].(string))
	}
	if got := strings.Join(names, ","); got != "Butterfree VMAX,Furret,Butterfree V" {
		t.Fatalf("unexpected order %s", got)
	}
	if out[1]["image"] != "https://assets.tcgdex.net/en/swsh/swsh3/swsh3-136/low.png" {
		t.Fatalf("unexpected image %v", out[1]["image"])
	}
}

func TestGetCardsByIDAllMissing(t *testing.T) {
	svc := &fakeCardData{cards: map[string]*tcgdex.Card{}}
	h := &GetCardsByIDHandler{Service: svc, Images: types.DefaultImageOptions(), Log: logging.Discard()}

	res, _ := h.ToolAdapter(context.Background(), callRequest(map[string]any{"card_ids": []any{"nope"}}))
	if got := resultText(t, res); got != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}

func TestGetByIDArgumentErrors(t *testing.T) {
	svc := &fakeCardData{}
	h := &GetCardsByIDHandler{Service: svc, Images: types.DefaultImageOptions(), Log: logging.Discard()}

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "missing ids", args: map[string]any{}, want: "card_ids is required"},
		{name: "empty ids", args: map[string]any{"card_ids": []any{" "}}, want: "at least one id"},
		{name: "non string id", args: map[string]any{"card_ids": []any{12.0}}, want: "card_ids[0]"},
		{name: "bad quality", args: map[string]any{"card_ids": []any{"a"}, "image_quality": "ultra"}, want: "image_quality"},
		{name: "bad format", args: map[string]any{"card_ids": []any{"a"}, "image_format": "gif"}, want: "image_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.ToolAdapter(context.Background(), callRequest(tt.args))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.IsError {
				t.Fatalf("expected tool error")
			}
			if got := resultText(t, res); !strings.Contains(got, tt.want) {
				t.Fatalf("expected %q in %q", tt.want, got)
			}
		})
	}
	if svc.cardCalls != 0 {
		t.Fatalf("expected no lookups on invalid input, got %d", svc.cardCalls)
	}
}

func TestGetSetsAndSeriesByID(t *testing.T) {
	svc := &fakeCardData{
		setByID: map[string]*tcgdex.Set{
			"swsh3": {SetResume: tcgdex.SetResume{ID: "swsh3", Name: "Darkness Ablaze"}, ReleaseDate: "2020-08-14"},
		},
		serieByID: map[string]*tcgdex.Serie{
			"swsh": {SerieResume: tcgdex.SerieResume{ID: "swsh", Name: "Sword & Shield"}},
		},
	}

	sets := &GetSetsByIDHandler{Service: svc, Images: types.DefaultImageOptions(), Log: logging.Discard()}
	res, _ := sets.ToolAdapter(context.Background(), callRequest(map[string]any{"set_ids": "swsh3"}))
	out := decodeList(t, res)
	if len(out) != 1 || out[0]["releaseDate"] != "2020-08-14" {
		t.Fatalf("unexpected sets %v", out)
	}

	series := &GetSeriesByIDHandler{Service: svc, Images: types.DefaultImageOptions(), Log: logging.Discard()}
	res, _ = series.ToolAdapter(context.Background(), callRequest(map[string]any{"serie_ids": []any{"swsh", "xy"}}))
	out = decodeList(t, res)
	if len(out) != 1 || out[0]["name"] != "Sword & Shield" {
		t.Fatalf("unexpected series %v", out)
	}
}

func TestCardQueryHandler(t *testing.T) {
	svc := &fakeCardData{
		resumes: []tcgdex.CardResume{{ID: "swsh3-136"}, {ID: "swsh3-1"}},
		cards: map[string]*tcgdex.Card{
			"swsh3-136": testCard("swsh3-136", "Furret"),
			"swsh3-1":   testCard("swsh3-1", "Butterfree V"),
		},
	}
	h := &CardQueryHandler{Service: svc, Images: types.DefaultImageOptions(), Log: logging.Discard()}

	res, err := h.ToolAdapter(context.Background(), callRequest(map[string]any{
		"query": `Query().contains("name", "ur").sort("localId", "desc")`,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := decodeList(t, res)
	if len(out) != 2 || out[0]["name"] != "Furret" {
		t.Fatalf("unexpected cards %v", out)
	}
	if got := svc.lastQuery.Encode(); got != "name=ur&sort%3Afield=localId&sort%3Aorder=DESC" {
		t.Fatalf("unexpected encoded query %s", got)
	}
}

func TestCardQueryHandlerTruncates(t *testing.T) {
	svc := &fakeCardData{cards: map[string]*tcgdex.Card{}}
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("c-%d", i)
		svc.resumes = append(svc.resumes, tcgdex.CardResume{ID: id})
		svc.cards[id] = testCard(id, id)
	}
	h := &CardQueryHandler{Service: svc, Images: types.DefaultImageOptions(), MaxResults: 3, Log: logging.Discard()}

	res, _ := h.ToolAdapter(context.Background(), callRequest(map[string]any{"query": `Query().notNull("hp")`}))
	out := decodeList(t, res)
	if len(out) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(out))
	}
	if svc.cardCalls != 3 {
		t.Fatalf("expected 3 card lookups, got %d", svc.cardCalls)
	}
}

func TestCardQueryHandlerRejectsBadQuery(t *testing.T) {
	svc := &fakeCardData{}
	h := &CardQueryHandler{Service: svc, Images: types.DefaultImageOptions(), Log: logging.Discard()}

	for _, q := range []string{"", `__import__("os")`, `Query().equal("name")`} {
		res, err := h.ToolAdapter(context.Background(), callRequest(map[string]any{"query": q}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsError {
			t.Fatalf("expected tool error for %q", q)
		}
	}
	if svc.lastQuery != nil {
		t.Fatalf("service should not be called for invalid queries")
	}
}
