package tcgdex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/metrics"
)

const (
	DefaultBaseURL  = "https://api.tcgdex.net/v2"
	DefaultLanguage = "en"
	defaultTimeout  = 30 * time.Second
	serviceName     = "tcgdex"
)

// ValueEndpoint names a listing that returns plain strings.
type ValueEndpoint string

const (
	Types           ValueEndpoint = "types"
	Rarities        ValueEndpoint = "rarities"
	Stages          ValueEndpoint = "stages"
	TrainerTypes    ValueEndpoint = "trainer-types"
	EnergyTypes     ValueEndpoint = "energy-types"
	RegulationMarks ValueEndpoint = "regulation-marks"
	Categories      ValueEndpoint = "categories"
	Illustrators    ValueEndpoint = "illustrators"
)

type Config struct {
	BaseURL    string
	Language   string
	Timeout    time.Duration
	CacheSize  int // 0 disables caching
	CacheTTL   time.Duration
	HTTPClient *http.Client
	Logger     logging.Logger
}

// Client talks to the TCGdex REST API. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	cache   *expirable.LRU[string, []byte]
	log     logging.Logger
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	lang := strings.TrimSpace(cfg.Language)
	if lang == "" {
		lang = DefaultLanguage
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		http:    httpClient,
		baseURL: base + "/" + url.PathEscape(lang),
		log:     cfg.Logger.WithName("tcgdex"),
	}
	if cfg.CacheSize > 0 {
		c.cache = expirable.NewLRU[string, []byte](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return c
}

// ListValues returns the string listing behind endpoint (types, rarities, ...).
func (c *Client) ListValues(ctx context.Context, endpoint ValueEndpoint) ([]string, error) {
	var values []string
	if _, err := c.getJSON(ctx, string(endpoint), string(endpoint), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (c *Client) ListSeries(ctx context.Context) ([]SerieResume, error) {
	var series []SerieResume
	if _, err := c.getJSON(ctx, "series", "series", &series); err != nil {
		return nil, err
	}
	return series, nil
}

func (c *Client) ListSets(ctx context.Context) ([]SetResume, error) {
	var sets []SetResume
	if _, err := c.getJSON(ctx, "sets", "sets", &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// ListCards returns the card resumes matching q. A nil query lists every card.
func (c *Client) ListCards(ctx context.Context, q *Query) ([]CardResume, error) {
	path := "cards"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var cards []CardResume
	if _, err := c.getJSON(ctx, "cards", path, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// GetCard fetches a full card. It returns nil, nil when the card does not exist.
func (c *Client) GetCard(ctx context.Context, id string) (*Card, error) {
	var card Card
	found, err := c.getJSON(ctx, "cards/{id}", "cards/"+url.PathEscape(id), &card)
	if err != nil || !found {
		return nil, err
	}
	return &card, nil
}

// GetSet fetches a full set. It returns nil, nil when the set does not exist.
func (c *Client) GetSet(ctx context.Context, id string) (*Set, error) {
	var set Set
	found, err := c.getJSON(ctx, "sets/{id}", "sets/"+url.PathEscape(id), &set)
	if err != nil || !found {
		return nil, err
	}
	return &set, nil
}

// GetSerie fetches a full serie. It returns nil, nil when the serie does not exist.
func (c *Client) GetSerie(ctx context.Context, id string) (*Serie, error) {
	var serie Serie
	found, err := c.getJSON(ctx, "series/{id}", "series/"+url.PathEscape(id), &serie)
	if err != nil || !found {
		return nil, err
	}
	return &serie, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, out any) (bool, error) {
	if body, ok := c.cacheGet(path); ok {
		if err := json.Unmarshal(body, out); err != nil {
			return false, fmt.Errorf("decode cached %s: %w", endpoint, err)
		}
		return true, nil
	}

	reqURL := c.baseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream(serviceName, endpoint, 0, start)
		return false, fmt.Errorf("tcgdex %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(serviceName, endpoint, resp.StatusCode, start)
	c.log.Debug("tcgdex request", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("tcgdex %s: status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	if c.cache != nil {
		c.cache.Add(path, body)
	}
	return true, nil
}

func (c *Client) cacheGet(path string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok := c.cache.Get(path)
	if ok {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}
	return body, ok
}
