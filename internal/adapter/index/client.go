// Package index talks to the external semantic index collaborator. The
// index owns ranking; this adapter only sends queries and returns ranked
// artifact ids for the core to map back to items.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client queries a remote semantic index over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "index"),
	}
}

type searchHit struct {
	ArtifactID string  `json:"artifactId"`
	Score      float64 `json:"score"`
}

// Search returns up to topK artifact ids ranked by relevance to query.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]string, error) {
	reqURL := fmt.Sprintf("%s/search?q=%s&k=%s",
		c.baseURL, url.QueryEscape(query), strconv.Itoa(topK))

	c.log.DebugContext(ctx, "index request", slog.String("query", query), slog.Int("top_k", topK))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("index: create request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		c.log.ErrorContext(ctx, "index request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("index: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("index: read body: %w", err)
	}

	var hits []searchHit
	if err := json.Unmarshal(body, &hits); err != nil {
		return nil, fmt.Errorf("index: decode json: %w", err)
	}

	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		if h.ArtifactID != "" {
			ids = append(ids, h.ArtifactID)
		}
	}

	c.log.DebugContext(ctx, "index response", slog.Int("hits", len(ids)))
	return ids, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "index retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(200 * time.Millisecond)

	return c.httpClient.Do(req)
}
