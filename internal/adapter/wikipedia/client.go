// Package wikipedia implements the encyclopedia port against the MediaWiki
// Action API of a language-scoped Wikipedia host.
package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hollandm/webscout/internal/adapter/otel"
	"github.com/hollandm/webscout/internal/config"
	"github.com/hollandm/webscout/internal/domain/provider"
	"github.com/hollandm/webscout/internal/domain/wiki"
	"github.com/hollandm/webscout/internal/resilience"
)

// Name labels this provider in errors, logs, and metrics.
const Name = "wikipedia"

// Client calls the MediaWiki api.php endpoint. Wikipedia requires no
// credential, so the provider is always configured.
type Client struct {
	language string
	endpoint string
	httpc    *http.Client
	retry    resilience.RetryPolicy
	breaker  *resilience.Breaker
	log      *slog.Logger
}

// New creates an encyclopedia client for the configured language. An
// explicit endpoint overrides the derived host (used by tests).
func New(cfg config.Wikipedia, timeout time.Duration, retry resilience.RetryPolicy, breaker *resilience.Breaker, log *slog.Logger) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", cfg.Language)
	}
	retry.RetryIf = provider.IsRetryable
	return &Client{
		language: cfg.Language,
		endpoint: endpoint,
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: otel.Transport(nil),
		},
		retry:   retry,
		breaker: breaker,
		log:     log,
	}
}

// Search returns up to limit title matches for query.
func (c *Client) Search(ctx context.Context, query string, limit int) (*wiki.SearchResults, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 20 {
		limit = 20
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))
	params.Set("utf8", "1")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Query struct {
			Search []struct {
				Title     string `json:"title"`
				Snippet   string `json:"snippet"`
				PageID    int    `json:"pageid"`
				WordCount int    `json:"wordcount"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, provider.Malformed(Name, "decode search response", err)
	}
	if len(decoded.Query.Search) == 0 {
		return nil, provider.Logical(Name, fmt.Sprintf("no matches for %q", query))
	}

	out := &wiki.SearchResults{
		Query: query,
		Hits:  make([]wiki.SearchHit, 0, len(decoded.Query.Search)),
	}
	for _, hit := range decoded.Query.Search {
		out.Hits = append(out.Hits, wiki.SearchHit{
			Title:     hit.Title,
			Snippet:   stripTags(hit.Snippet), // snippets arrive with <span class="searchmatch"> markup
			PageID:    hit.PageID,
			WordCount: hit.WordCount,
		})
	}

	c.log.Debug("wikipedia search completed", "query", query, "hits", len(out.Hits))
	return out, nil
}

// Summary returns a sentence-bounded plaintext extract of the page.
func (c *Client) Summary(ctx context.Context, title string, sentences int) (*wiki.Article, error) {
	if sentences < 1 {
		sentences = 1
	}
	if sentences > 10 {
		sentences = 10
	}

	params := extractParams(title)
	params.Set("exsentences", strconv.Itoa(sentences))
	return c.extract(ctx, title, params)
}

// Article returns the full plaintext extract of the page.
func (c *Client) Article(ctx context.Context, title string) (*wiki.Article, error) {
	return c.extract(ctx, title, extractParams(title))
}

func extractParams(title string) url.Values {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", title)
	return params
}

func (c *Client) extract(ctx context.Context, title string, params url.Values) (*wiki.Article, error) {
	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Query struct {
			Pages map[string]struct {
				PageID  int     `json:"pageid"`
				Title   string  `json:"title"`
				Extract string  `json:"extract"`
				Missing *string `json:"missing"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, provider.Malformed(Name, "decode extract response", err)
	}

	for _, page := range decoded.Query.Pages {
		if page.Missing != nil || page.PageID == 0 {
			continue
		}
		if page.Extract == "" {
			return nil, provider.Logical(Name, fmt.Sprintf("page %q has no extract", page.Title))
		}
		return &wiki.Article{
			Title:    page.Title,
			PageID:   page.PageID,
			Language: c.language,
			Extract:  page.Extract,
		}, nil
	}

	return nil, provider.Logical(Name, fmt.Sprintf("no page found for %q", title))
}

// get issues one API call through the breaker and retry policy and maps
// transport failures into the taxonomy.
func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	var body []byte
	err := c.breaker.Execute(func() error {
		return c.retry.Do(ctx, func(ctx context.Context) error {
			b, err := c.getOnce(ctx, params)
			if err != nil {
				return err
			}
			body = b
			return nil
		})
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil, provider.Transient(Name, "upstream temporarily unavailable", err)
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) getOnce(ctx context.Context, params url.Values) ([]byte, error) {
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
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, provider.Transient(Name, fmt.Sprintf("http %d", resp.StatusCode), nil)
	default:
		return nil, provider.Logical(Name, fmt.Sprintf("http %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.Transient(Name, "read response", err)
	}
	return body, nil
}
