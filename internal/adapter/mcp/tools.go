package mcp

import (
	"context"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hollandm/webscout/internal/service"
)

// registerTools registers all MCP tools on the server.
func (s *Server) registerTools() {
	s.mcpServer.AddTools(
		s.googleSearchTool(),
		s.fetchPageTool(),
		s.wikipediaSearchTool(),
		s.wikipediaSummaryTool(),
		s.wikipediaArticleTool(),
	)
}

func (s *Server) googleSearchTool() mcpserver.ServerTool {
	tool := mcplib.NewTool(service.OpGoogleSearch,
		mcplib.WithDescription("Search the web via Google Custom Search and return titles, links and snippets"),
		mcplib.WithString("query",
			mcplib.Required(),
			mcplib.Description("The search query"),
		),
		mcplib.WithNumber("num_results",
			mcplib.Description("Number of results to return (1-10, default 5)"),
			mcplib.Min(1),
			mcplib.Max(10),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.dispatchHandler(service.OpGoogleSearch, "query"),
	}
}

func (s *Server) fetchPageTool() mcpserver.ServerTool {
	tool := mcplib.NewTool(service.OpFetchPage,
		mcplib.WithDescription("Fetch a web page and return its readable text content"),
		mcplib.WithString("url",
			mcplib.Required(),
			mcplib.Description("The http(s) URL to fetch"),
		),
		mcplib.WithNumber("max_length",
			mcplib.Description("Maximum number of characters to return (default 10000)"),
			mcplib.Min(1),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.dispatchHandler(service.OpFetchPage, "url"),
	}
}

func (s *Server) wikipediaSearchTool() mcpserver.ServerTool {
	tool := mcplib.NewTool(service.OpWikiSearch,
		mcplib.WithDescription("Search Wikipedia and return matching article titles with snippets"),
		mcplib.WithString("query",
			mcplib.Required(),
			mcplib.Description("The search query"),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of matches to return (1-20, default 5)"),
			mcplib.Min(1),
			mcplib.Max(20),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.dispatchHandler(service.OpWikiSearch, "query"),
	}
}

func (s *Server) wikipediaSummaryTool() mcpserver.ServerTool {
	tool := mcplib.NewTool(service.OpWikiSummary,
		mcplib.WithDescription("Get a short plain-text summary of a Wikipedia article"),
		mcplib.WithString("title",
			mcplib.Required(),
			mcplib.Description("The article title"),
		),
		mcplib.WithNumber("sentences",
			mcplib.Description("Number of sentences to return (1-10, default 3)"),
			mcplib.Min(1),
			mcplib.Max(10),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.dispatchHandler(service.OpWikiSummary, "title"),
	}
}

func (s *Server) wikipediaArticleTool() mcpserver.ServerTool {
	tool := mcplib.NewTool(service.OpWikiArticle,
		mcplib.WithDescription("Get the full plain-text extract of a Wikipedia article"),
		mcplib.WithString("title",
			mcplib.Required(),
			mcplib.Description("The article title"),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.dispatchHandler(service.OpWikiArticle, "title"),
	}
}

// dispatchHandler adapts one operation into an MCP tool handler. Every
// failure becomes an error-flagged tool result; the handler itself never
// returns a protocol error for a domain failure.
func (s *Server) dispatchHandler(op, required string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
		if s.deps.Dispatcher == nil {
			return mcplib.NewToolResultError("dispatcher not configured"), nil
		}
		args := req.GetArguments()
		if v, ok := args[required].(string); !ok || v == "" {
			return mcplib.NewToolResultError(fmt.Sprintf("%s is required", required)), nil
		}
		data, err := s.deps.Dispatcher.Dispatch(ctx, service.Invocation{Op: op, Args: args})
		if err != nil {
			return mcplib.NewToolResultErrorFromErr(fmt.Sprintf("%s failed", op), err), nil
		}
		return toolResultJSON(string(data)), nil
	}
}

func toolResultJSON(data string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(data)
}
