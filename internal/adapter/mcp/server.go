// Package mcp exposes the dispatcher and the cache-backed resources over the
// Model Context Protocol, on either a stdio or a streamable HTTP transport.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	mcpserver "github.com/mark3labs/mcp-go/server"

	otelx "github.com/hollandm/webscout/internal/adapter/otel"
	"github.com/hollandm/webscout/internal/service"
)

// Dispatcher is the tool-call entry point the server forwards to. Every tool
// handler funnels through it; the handlers themselves never talk upstream.
type Dispatcher interface {
	Dispatch(ctx context.Context, inv service.Invocation) ([]byte, error)
}

// Reader resolves resource URIs against cache state.
type Reader interface {
	Read(ctx context.Context, uri string) ([]byte, error)
}

// ServerConfig holds the MCP server identity and HTTP binding.
type ServerConfig struct {
	Name    string
	Version string
	Addr    string // HTTP transport only
	APIKey  string // empty disables HTTP auth
}

// ServerDeps carries the server's collaborators. Nil fields degrade to
// error-flagged tool results rather than panics.
type ServerDeps struct {
	Dispatcher Dispatcher
	Reader     Reader
}

// Server wraps an MCP server instance plus the optional HTTP transport
// around it.
type Server struct {
	cfg       ServerConfig
	deps      ServerDeps
	log       *slog.Logger
	mcpServer *mcpserver.MCPServer

	httpServer *http.Server
	listener   net.Listener
}

// NewServer builds the MCP server and registers all tools and resources.
func NewServer(cfg ServerConfig, deps ServerDeps, log *slog.Logger) *Server {
	s := &Server{
		cfg:  cfg,
		deps: deps,
		log:  log,
		mcpServer: mcpserver.NewMCPServer(
			cfg.Name,
			cfg.Version,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying MCP server, mainly for tests.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the MCP protocol over stdin/stdout and blocks until the
// stream closes. Logging goes to stderr so the protocol stream stays clean.
func (s *Server) ServeStdio() error {
	s.log.Info("serving mcp over stdio", "name", s.cfg.Name, "version", s.cfg.Version)
	return mcpserver.ServeStdio(s.mcpServer)
}

// Start binds the HTTP transport and begins serving in the background.
// Use Stop to shut it down.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("serving mcp over http", "addr", ln.Addr().String(), "auth", s.cfg.APIKey != "")
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server stopped", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP transport.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bound HTTP address, valid after Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.cfg.Addr
	}
	return s.listener.Addr().String()
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(otelx.HTTPMiddleware(s.cfg.Name))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer)
	r.Mount("/mcp", AuthMiddleware(s.cfg.APIKey, streamable))
	return r
}
