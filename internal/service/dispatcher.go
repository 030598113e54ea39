// Package service holds the request-dispatch and caching mediation layer:
// the dispatcher that decides cache-or-upstream per tool invocation, and the
// read-only resource projection over the same cache pools.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	otelx "github.com/hollandm/webscout/internal/adapter/otel"
	"github.com/hollandm/webscout/internal/domain/provider"
	"github.com/hollandm/webscout/internal/logger"
	"github.com/hollandm/webscout/internal/port/cache"
	"github.com/hollandm/webscout/internal/port/upstream"
)

// Operation names. These are the MCP tool names as registered on the server.
const (
	OpGoogleSearch = "google_search"
	OpFetchPage    = "fetch_page"
	OpWikiSearch   = "wikipedia_search"
	OpWikiSummary  = "wikipedia_summary"
	OpWikiArticle  = "wikipedia_article"
)

// Invocation is one validated tool call. Transient: it exists only for the
// duration of a single dispatch.
type Invocation struct {
	Op   string
	Args map[string]any
}

// Defaults carries the argument defaults applied when a caller omits an
// optional argument.
type Defaults struct {
	SearchResults int // google_search num_results
	WikiLimit     int // wikipedia_search limit
	Sentences     int // wikipedia_summary sentences
	FetchLength   int // fetch_page max_length
}

// operation binds one tool name to its owning pool, key derivation, and
// upstream call. The pool binding is what keeps the two provider families'
// keyspaces and failure domains separate.
type operation struct {
	pool cache.Store
	name string // pool name, for metrics attributes
	key  func(args map[string]any) string
	call func(ctx context.Context, args map[string]any) (any, error)
}

// Dispatcher mediates every tool invocation: cache read, upstream call on
// miss, cache write on success only. It never panics across its boundary;
// every path resolves to a payload or a typed error.
type Dispatcher struct {
	defaults Defaults
	log      *slog.Logger
	metrics  *otelx.Metrics
	ops      map[string]operation
}

// NewDispatcher wires the pools and adapters into the operation registry.
// Pools are passed in explicitly — they are owned here and by the resource
// reader, never ambient.
func NewDispatcher(
	searchPool, wikiPool cache.Store,
	searcher upstream.Searcher,
	wiki upstream.Encyclopedia,
	fetcher upstream.PageFetcher,
	defaults Defaults,
	log *slog.Logger,
	metrics *otelx.Metrics,
) *Dispatcher {
	d := &Dispatcher{
		defaults: defaults,
		log:      log,
		metrics:  metrics,
	}

	d.ops = map[string]operation{
		OpGoogleSearch: {
			pool: searchPool,
			name: "search",
			key: func(args map[string]any) string {
				return SearchKey(stringArg(args, "query"), intArg(args, "num_results", defaults.SearchResults))
			},
			call: func(ctx context.Context, args map[string]any) (any, error) {
				return searcher.Search(ctx, stringArg(args, "query"), intArg(args, "num_results", defaults.SearchResults))
			},
		},
		OpFetchPage: {
			pool: searchPool,
			name: "search",
			key: func(args map[string]any) string {
				return FetchKey(stringArg(args, "url"), intArg(args, "max_length", defaults.FetchLength))
			},
			call: func(ctx context.Context, args map[string]any) (any, error) {
				return fetcher.Fetch(ctx, stringArg(args, "url"), intArg(args, "max_length", defaults.FetchLength))
			},
		},
		OpWikiSearch: {
			pool: wikiPool,
			name: "wiki",
			key: func(args map[string]any) string {
				return WikiSearchKey(stringArg(args, "query"), intArg(args, "limit", defaults.WikiLimit))
			},
			call: func(ctx context.Context, args map[string]any) (any, error) {
				return wiki.Search(ctx, stringArg(args, "query"), intArg(args, "limit", defaults.WikiLimit))
			},
		},
		OpWikiSummary: {
			pool: wikiPool,
			name: "wiki",
			key: func(args map[string]any) string {
				return SummaryKey(stringArg(args, "title"), intArg(args, "sentences", defaults.Sentences))
			},
			call: func(ctx context.Context, args map[string]any) (any, error) {
				return wiki.Summary(ctx, stringArg(args, "title"), intArg(args, "sentences", defaults.Sentences))
			},
		},
		OpWikiArticle: {
			pool: wikiPool,
			name: "wiki",
			key: func(args map[string]any) string {
				return ArticleKey(stringArg(args, "title"))
			},
			call: func(ctx context.Context, args map[string]any) (any, error) {
				return wiki.Article(ctx, stringArg(args, "title"))
			},
		},
	}

	return d
}

// Dispatch resolves one invocation. On a cache hit the stored snapshot is
// returned byte-identical with no upstream call. On a miss the matching
// adapter runs; only a successful payload is written back, so failures never
// poison the cache and a later success is free to fill it.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) ([]byte, error) {
	op, ok := d.ops[inv.Op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", inv.Op)
	}

	start := time.Now()
	key := op.key(inv.Args)
	ctx = logger.WithInvocationID(ctx, uuid.NewString())
	ctx, span := otelx.StartDispatchSpan(ctx, inv.Op, key)
	defer span.End()

	log := d.log.With(
		"invocation_id", logger.InvocationID(ctx),
		"op", inv.Op,
		"key", key,
	)
	poolAttr := metric.WithAttributes(attribute.String("pool", op.name))

	if data, hit := op.pool.Get(key); hit {
		d.metrics.CacheHits.Add(ctx, 1, poolAttr)
		d.metrics.DispatchDuration.Record(ctx, time.Since(start).Seconds(), poolAttr)
		log.Debug("cache hit")
		return data, nil
	}
	d.metrics.CacheMisses.Add(ctx, 1, poolAttr)

	payload, err := op.call(ctx, inv.Args)
	if err != nil {
		d.metrics.UpstreamFailures.Add(ctx, 1, poolAttr)
		span.RecordError(err)
		log.Warn("dispatch failed", "kind", provider.KindOf(err).String(), "error", err)
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", inv.Op, err)
	}
	op.pool.Set(key, data)
	d.metrics.DispatchDuration.Record(ctx, time.Since(start).Seconds(), poolAttr)
	log.Debug("cache fill", "bytes", len(data), "elapsed", time.Since(start))
	return data, nil
}

// stringArg returns a string argument. The MCP schema layer has already
// validated presence and type; an absent value decays to "".
func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// intArg returns an integer argument, tolerating the float64 that JSON
// decoding produces, or def when absent.
func intArg(args map[string]any, name string, def int) int {
	switch v := args[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}
