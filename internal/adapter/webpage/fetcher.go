// Package webpage implements the page-fetch port: it downloads an arbitrary
// URL and extracts readable text from HTML.
package webpage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hollandm/webscout/internal/adapter/otel"
	"github.com/hollandm/webscout/internal/config"
	"github.com/hollandm/webscout/internal/domain/provider"
	"github.com/hollandm/webscout/internal/domain/webpage"
	"github.com/hollandm/webscout/internal/resilience"
)

// Name labels this provider in errors, logs, and metrics. Page fetch belongs
// to the web-search provider family but targets arbitrary hosts, so it
// carries no circuit breaker: one dead site must not trip fetches elsewhere.
const Name = "fetch"

// Fetcher downloads pages. Stateless between calls.
type Fetcher struct {
	userAgent string
	maxBody   int64
	httpc     *http.Client
	retry     resilience.RetryPolicy
	log       *slog.Logger
}

// New creates a page fetcher.
func New(cfg config.Fetch, timeout time.Duration, retry resilience.RetryPolicy, log *slog.Logger) *Fetcher {
	retry.RetryIf = provider.IsRetryable
	return &Fetcher{
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodyBytes,
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: otel.Transport(nil),
		},
		retry: retry,
		log:   log,
	}
}

// Fetch downloads rawURL and returns its extracted text, truncated to
// maxLength characters.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, maxLength int) (*webpage.Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, provider.Logical(Name, fmt.Sprintf("unsupported url %q", rawURL))
	}

	var page *webpage.Page
	err = f.retry.Do(ctx, func(ctx context.Context) error {
		p, err := f.fetch(ctx, rawURL, maxLength)
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string, maxLength int) (*webpage.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, provider.Malformed(Name, "build request", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpc.Do(req)
	if err != nil {
		return nil, provider.Transient(Name, "request failed", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, provider.Transient(Name, fmt.Sprintf("http %d", resp.StatusCode), nil)
	default:
		return nil, provider.Logical(Name, fmt.Sprintf("http %d for %s", resp.StatusCode, rawURL))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return nil, provider.Transient(Name, "read body", err)
	}

	contentType := resp.Header.Get("Content-Type")
	var title, text string
	switch {
	case strings.Contains(contentType, "text/html"), contentType == "":
		title, text = extractText(strings.NewReader(string(body)))
	case strings.HasPrefix(contentType, "text/"):
		text = strings.TrimSpace(string(body))
	default:
		return nil, provider.Malformed(Name, fmt.Sprintf("unsupported content type %q", contentType), nil)
	}

	truncated := false
	if runes := []rune(text); maxLength > 0 && len(runes) > maxLength {
		text = string(runes[:maxLength])
		truncated = true
	}

	f.log.Debug("page fetched", "url", rawURL, "bytes", len(body), "truncated", truncated)
	return &webpage.Page{
		URL:         rawURL,
		Title:       title,
		Content:     text,
		ContentType: contentType,
		Truncated:   truncated,
		FetchedAt:   time.Now().UTC(),
	}, nil
}
