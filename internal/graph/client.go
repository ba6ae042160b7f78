// Package graph is the HTTP client for the relationship-graph service.
// The service pre-computes hop distances between entities and the
// connecting evidence; this client only fetches and decodes.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/stadtaev/sixdegrees/internal/game"
	"github.com/stadtaev/sixdegrees/internal/metrics"
)

type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache caches DistancesFrom and TopCandidates responses. The graph
// is rebuilt upstream on a cadence of hours, so short TTLs are safe.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

func New(baseURL, token string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chainLengthsResponse mirrors the service's calcChainLengthsFrom shape.
type chainLengthsResponse struct {
	ChainLengths []game.DistanceBucket `json:"chainLengths"`
}

func (c *Client) DistancesFrom(ctx context.Context, seed string) ([]game.DistanceBucket, error) {
	path := "/calcChainLengthsFrom/" + url.PathEscape(seed)
	var resp chainLengthsResponse
	if err := c.getJSON(ctx, "calcChainLengthsFrom", path, &resp); err != nil {
		return nil, err
	}
	return resp.ChainLengths, nil
}

// chainResponse carries the articles linking each hop of the chain. For a
// directly linked pair there is a single hop; its articles are the
// evidence the game passes through.
type chainResponse struct {
	ArticlesPerLink []json.RawMessage `json:"articlesPerLink"`
}

func (c *Client) EvidenceBetween(ctx context.Context, a, b string) (json.RawMessage, error) {
	path := "/calcChainWithArticlesBetween/" + url.PathEscape(a) + "/" + url.PathEscape(b)
	var resp chainResponse
	if err := c.getJSONUncached(ctx, "calcChainWithArticlesBetween", path, &resp); err != nil {
		return nil, err
	}
	if len(resp.ArticlesPerLink) == 0 {
		return nil, fmt.Errorf("no connecting articles between %q and %q", a, b)
	}
	return resp.ArticlesPerLink[0], nil
}

// candidatePair decodes the service's [name, connectionCount] tuples.
type candidatePair game.Candidate

func (p *candidatePair) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) < 2 {
		return fmt.Errorf("candidate tuple has %d elements, want 2", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &p.Name); err != nil {
		return fmt.Errorf("candidate name: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &p.Connections); err != nil {
		return fmt.Errorf("candidate connection count: %w", err)
	}
	return nil
}

// TopCandidates fetches the biggest connected island of entities, ordered
// most-connected first.
func (c *Client) TopCandidates(ctx context.Context) ([]game.Candidate, error) {
	var pairs []candidatePair
	if err := c.getJSON(ctx, "biggestIsland", "/biggestIsland", &pairs); err != nil {
		return nil, err
	}
	out := make([]game.Candidate, len(pairs))
	for i, p := range pairs {
		out[i] = game.Candidate(p)
	}
	return out, nil
}

type summaryResponse struct {
	Times struct {
		IntervalCoveredHrs float64 `json:"intervalCoveredHrs"`
	} `json:"times"`
}

func (c *Client) Summary(ctx context.Context) (game.GraphSummary, error) {
	var resp summaryResponse
	if err := c.getJSON(ctx, "summary", "/summary", &resp); err != nil {
		return game.GraphSummary{}, err
	}
	return game.GraphSummary{CoverageHours: int(resp.Times.IntervalCoveredHrs)}, nil
}

// getJSON fetches path, consulting the cache when one is configured.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, v any) error {
	if c.cache != nil {
		if data, ok := c.cache.Get(ctx, path); ok {
			metrics.GraphRequests.WithLabelValues(endpoint, "cache_hit").Inc()
			return json.Unmarshal(data, v)
		}
	}

	data, err := c.get(ctx, endpoint, path)
	if err != nil {
		return err
	}
	if c.cache != nil {
		c.cache.Set(ctx, path, data, c.cacheTTL)
	}
	return json.Unmarshal(data, v)
}

func (c *Client) getJSONUncached(ctx context.Context, endpoint, path string, v any) error {
	data, err := c.get(ctx, endpoint, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (c *Client) get(ctx context.Context, endpoint, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GraphRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("graph service %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GraphRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Warn("graph service error", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, fmt.Errorf("graph service %s: status %d", endpoint, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GraphRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("graph service %s: reading body: %w", endpoint, err)
	}
	metrics.GraphRequests.WithLabelValues(endpoint, "ok").Inc()
	return data, nil
}
