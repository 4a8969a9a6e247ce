package justtcg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/metrics"
)

const (
	DefaultBaseURL    = "https://api.justtcg.com/v1"
	DefaultBatchLimit = 20
	defaultTimeout    = 30 * time.Second
	batchConcurrency  = 4
	serviceName       = "justtcg"
)

type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64 // <= 0 disables limiting
	Burst             int
	BatchLimit        int
	HTTPClient        *http.Client
	Logger            logging.Logger
}

// Client talks to the JustTCG pricing API. It is safe for concurrent use.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	batchLimit int
	limiter    *rate.Limiter
	log        logging.Logger
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	batchLimit := cfg.BatchLimit
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	limit := rate.Inf
	burst := cfg.Burst
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		http:       httpClient,
		baseURL:    base,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		batchLimit: batchLimit,
		limiter:    rate.NewLimiter(limit, burst),
		log:        cfg.Logger.WithName("justtcg"),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// ListGames returns the games JustTCG tracks.
func (c *Client) ListGames(ctx context.Context) ([]json.RawMessage, error) {
	return c.do(ctx, "games", http.MethodGet, "games", nil, nil)
}

// ListSets returns the sets of one game.
func (c *Client) ListSets(ctx context.Context, game string) ([]json.RawMessage, error) {
	if strings.TrimSpace(game) == "" {
		return nil, fmt.Errorf("game is required")
	}
	return c.do(ctx, "sets", http.MethodGet, "sets", url.Values{"game": []string{game}}, nil)
}

// GetCards runs a single card lookup or search.
func (c *Client) GetCards(ctx context.Context, q CardQuery) ([]json.RawMessage, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return c.do(ctx, "cards", http.MethodGet, "cards", q.Values(), nil)
}

// GetCardsBatch looks up many cards at once. Batches above the configured
// limit are split and posted concurrently; chunks that fail are left out.
func (c *Client) GetCardsBatch(ctx context.Context, items []BatchItem) ([]json.RawMessage, error) {
	if len(items) == 0 {
		return nil, nil
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("batch query %d: %w", i, err)
		}
	}

	chunks := chunk(items, c.batchLimit)
	if len(chunks) == 1 {
		return c.do(ctx, "cards_batch", http.MethodPost, "cards", nil, chunks[0])
	}

	results := make([][]json.RawMessage, len(chunks))
	failures := make([]error, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, part := range chunks {
		g.Go(func() error {
			data, err := c.do(gctx, "cards_batch", http.MethodPost, "cards", nil, part)
			if err != nil {
				c.log.Error(err, "batch chunk failed", "chunk", i, "size", len(part))
				failures[i] = err
				return nil
			}
			results[i] = data
			return nil
		})
	}
	_ = g.Wait()

	var out []json.RawMessage
	failed := 0
	for i := range chunks {
		if failures[i] != nil {
			failed++
			continue
		}
		out = append(out, results[i]...)
	}
	if failed == len(chunks) {
		return nil, fmt.Errorf("all %d batch chunks failed: %w", failed, failures[0])
	}
	return out, nil
}

func chunk(items []BatchItem, size int) [][]BatchItem {
	var chunks [][]BatchItem
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, payload any) ([]json.RawMessage, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("justtcg api key is not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("justtcg rate limiter: %w", err)
	}

	reqURL := c.baseURL + "/" + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream(serviceName, endpoint, 0, start)
		return nil, fmt.Errorf("justtcg %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(serviceName, endpoint, resp.StatusCode, start)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return c.decode(endpoint, resp.StatusCode, raw)
}

// decode unwraps the {"data": [...]} envelope.
func (c *Client) decode(endpoint string, status int, raw []byte) ([]json.RawMessage, error) {
	if !gjson.ValidBytes(raw) {
		if status < 200 || status >= 300 {
			return nil, fmt.Errorf("justtcg %s: status %d", endpoint, status)
		}
		return nil, fmt.Errorf("justtcg %s: invalid JSON response", endpoint)
	}
	envelope := gjson.ParseBytes(raw)

	if status < 200 || status >= 300 {
		if msg := errorMessage(envelope); msg != "" {
			return nil, fmt.Errorf("justtcg %s: status %d: %s", endpoint, status, msg)
		}
		return nil, fmt.Errorf("justtcg %s: status %d", endpoint, status)
	}

	if usage := envelope.Get("_metadata"); usage.Exists() {
		c.log.Debug("justtcg usage", "endpoint", endpoint, "metadata", usage.Raw)
	}

	data := envelope.Get("data")
	if !data.Exists() {
		if msg := errorMessage(envelope); msg != "" {
			return nil, fmt.Errorf("justtcg %s: %s", endpoint, msg)
		}
		return nil, fmt.Errorf("justtcg %s: response has no data", endpoint)
	}
	if data.Type == gjson.Null {
		return []json.RawMessage{}, nil
	}
	if !data.IsArray() {
		return []json.RawMessage{json.RawMessage(data.Raw)}, nil
	}

	items := data.Array()
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item.Raw))
	}
	return out, nil
}

func errorMessage(envelope gjson.Result) string {
	for _, key := range []string{"error", "message", "details"} {
		if v := envelope.Get(key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
