// Package upstream defines the ports implemented by the provider adapters
// and consumed by the dispatcher. Each provider family has its own port;
// they are deliberately not unified behind one abstraction because the
// families have independent cache namespaces and failure domains.
package upstream

import (
	"context"

	"github.com/hollandm/webscout/internal/domain/search"
	"github.com/hollandm/webscout/internal/domain/webpage"
	"github.com/hollandm/webscout/internal/domain/wiki"
)

// Searcher is the web-search provider.
type Searcher interface {
	Search(ctx context.Context, query string, num int) (*search.Results, error)
}

// Encyclopedia is the encyclopedia-content provider.
type Encyclopedia interface {
	Search(ctx context.Context, query string, limit int) (*wiki.SearchResults, error)
	Summary(ctx context.Context, title string, sentences int) (*wiki.Article, error)
	Article(ctx context.Context, title string) (*wiki.Article, error)
}

// PageFetcher fetches and extracts text from an arbitrary URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, maxLength int) (*webpage.Page, error)
}
