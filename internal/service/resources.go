package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	otelx "github.com/hollandm/webscout/internal/adapter/otel"
	"github.com/hollandm/webscout/internal/port/cache"
)

// Scheme is the URI scheme of all WebScout resources.
const Scheme = "webscout"

// ErrNotCached is returned when a resource address has no cached payload.
// Resources are a strictly read-only projection over cache state populated
// as a byproduct of tool use; the reader never fabricates data.
var ErrNotCached = errors.New("not cached yet: invoke the producing tool first")

// Reader resolves resource URIs against the cache pools. It performs no
// network I/O and never mutates cache contents.
type Reader struct {
	searchPool cache.Store
	wikiPool   cache.Store
	defaults   Defaults
	log        *slog.Logger
}

// NewReader creates a resource reader over the same pools the dispatcher
// fills.
func NewReader(searchPool, wikiPool cache.Store, defaults Defaults, log *slog.Logger) *Reader {
	return &Reader{
		searchPool: searchPool,
		wikiPool:   wikiPool,
		defaults:   defaults,
		log:        log,
	}
}

// Read parses a resource address into the producing operation's key space
// and looks it up. webscout://search/{query} addresses the key that
// google_search over the same query (at the default result count) fills;
// webscout://wiki/{title} addresses wikipedia_article's key.
func (r *Reader) Read(ctx context.Context, rawURI string) ([]byte, error) {
	_, span := otelx.StartResourceSpan(ctx, rawURI)
	defer span.End()

	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, fmt.Errorf("parse resource uri %q: %w", rawURI, err)
	}
	if u.Scheme != Scheme {
		return nil, fmt.Errorf("unsupported resource scheme %q", u.Scheme)
	}

	// url.Parse has already decoded percent-escapes in the path.
	ident := strings.TrimPrefix(u.Path, "/")
	if ident == "" {
		return nil, fmt.Errorf("resource uri %q is missing an identifier", rawURI)
	}

	var (
		pool cache.Store
		key  string
	)
	switch u.Host {
	case "search":
		pool = r.searchPool
		key = SearchKey(ident, r.defaults.SearchResults)
	case "wiki":
		pool = r.wikiPool
		key = ArticleKey(ident)
	default:
		return nil, fmt.Errorf("unknown resource category %q", u.Host)
	}

	data, ok := pool.Get(key)
	if !ok {
		r.log.Debug("resource not cached", "uri", rawURI, "key", key)
		return nil, fmt.Errorf("%w (%s)", ErrNotCached, rawURI)
	}

	r.log.Debug("resource read", "uri", rawURI, "key", key, "bytes", len(data))
	return data, nil
}
