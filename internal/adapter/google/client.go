// Package google implements the web-search port against the Google Custom
// Search JSON API.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hollandm/webscout/internal/adapter/otel"
	"github.com/hollandm/webscout/internal/config"
	"github.com/hollandm/webscout/internal/domain/provider"
	"github.com/hollandm/webscout/internal/domain/search"
	"github.com/hollandm/webscout/internal/resilience"
)

// Name labels this provider in errors, logs, and metrics.
const Name = "google"

// Client calls the Custom Search JSON API. It is stateless between calls:
// one instance serves all requests for the process lifetime.
type Client struct {
	apiKey   string
	engineID string
	endpoint string
	httpc    *http.Client
	retry    resilience.RetryPolicy
	breaker  *resilience.Breaker
	log      *slog.Logger
}

// New creates a search client. Missing credentials do not fail construction;
// they make every call short-circuit to NotConfigured.
func New(cfg config.Google, timeout time.Duration, retry resilience.RetryPolicy, breaker *resilience.Breaker, log *slog.Logger) *Client {
	retry.RetryIf = provider.IsRetryable
	return &Client{
		apiKey:   cfg.APIKey,
		engineID: cfg.EngineID,
		endpoint: cfg.Endpoint,
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: otel.Transport(nil),
		},
		retry:   retry,
		breaker: breaker,
		log:     log,
	}
}

// Configured reports whether the provider has usable credentials.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.engineID != ""
}

// Search runs one query and returns up to num results (clamped to the API's
// 1..10 range). Transient failures are retried with backoff; logical
// failures surface immediately.
func (c *Client) Search(ctx context.Context, query string, num int) (*search.Results, error) {
	if !c.Configured() {
		return nil, provider.NotConfigured(Name,
			"web search disabled: GOOGLE_API_KEY and GOOGLE_SEARCH_ENGINE_ID are required")
	}
	if num < 1 {
		num = 1
	}
	if num > 10 {
		num = 10
	}

	var out *search.Results
	err := c.breaker.Execute(func() error {
		return c.retry.Do(ctx, func(ctx context.Context) error {
			res, err := c.search(ctx, query, num)
			if err != nil {
				return err
			}
			out = res
			return nil
		})
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil, provider.Transient(Name, "upstream temporarily unavailable", err)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

type apiResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) search(ctx context.Context, query string, num int) (*search.Results, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, provider.Malformed(Name, "build request", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, provider.Transient(Name, "request failed", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode below
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, provider.Transient(Name, fmt.Sprintf("http %d", resp.StatusCode), nil)
	default:
		// 4xx responses carry a structured error; they are definitive
		// answers (bad key, quota exhausted), not worth a retry.
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, provider.Logical(Name, fmt.Sprintf("http %d: %s", resp.StatusCode, apiErr.Error.Message))
		}
		return nil, provider.Logical(Name, fmt.Sprintf("http %d", resp.StatusCode))
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, provider.Malformed(Name, "decode response", err)
	}
	if len(body.Items) == 0 {
		return nil, provider.Logical(Name, fmt.Sprintf("no results for %q", query))
	}

	results := &search.Results{
		Query:        query,
		TotalResults: body.SearchInformation.TotalResults,
		Results:      make([]search.Result, 0, len(body.Items)),
	}
	for _, it := range body.Items {
		results.Results = append(results.Results, search.Result{
			Title:   it.Title,
			Link:    it.Link,
			Snippet: it.Snippet,
		})
	}

	c.log.Debug("google search completed", "query", query, "results", len(results.Results))
	return results, nil
}
