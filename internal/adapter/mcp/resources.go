package mcp

import (
	"context"

	mcplib "github.com/mark3labs/mcp-go/mcp"
)

// registerResources registers the cache-backed resource templates. Resource
// reads are strictly passive: a miss is an error, never a fetch.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"webscout://search/{query}",
			"Cached Web Search",
			mcplib.WithTemplateDescription("Cached result of a prior google_search for this query at the default result count"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		s.handleCachedResource,
	)

	s.mcpServer.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"webscout://wiki/{title}",
			"Cached Wikipedia Article",
			mcplib.WithTemplateDescription("Cached result of a prior wikipedia_article for this title"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		s.handleCachedResource,
	)
}

func (s *Server) handleCachedResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	if s.deps.Reader == nil {
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     `{"error":"resource reader not configured"}`,
			},
		}, nil
	}
	data, err := s.deps.Reader.Read(ctx, req.Params.URI)
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
