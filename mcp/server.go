// Package mcp exposes the search index as MCP tools over stdio.
//
// The server holds the live index behind an atomic pointer. A refresh
// builds a complete replacement index and swaps it in; a published
// index is never mutated while readers may be observing it.
package mcp

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/apidex/apidex"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RefreshFunc re-fetches sources and builds a fresh, fully populated
// index to publish.
type RefreshFunc func(ctx context.Context) (apidex.Index, error)

// holder wraps the index interface so it can live in an atomic.Pointer.
type holder struct {
	index apidex.Index
}

// Server serves index queries as MCP tools.
type Server struct {
	current atomic.Pointer[holder]
	refresh RefreshFunc
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithRefreshFunc enables the refresh_docs tool.
func WithRefreshFunc(fn RefreshFunc) Option {
	return func(s *Server) { s.refresh = fn }
}

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a Server publishing the given index.
func NewServer(index apidex.Index, opts ...Option) *Server {
	s := &Server{
		logger: slog.Default(),
	}
	s.current.Store(&holder{index: index})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Index returns the currently published index.
func (s *Server) Index() apidex.Index {
	return s.current.Load().index
}

// Swap atomically publishes a new index.
func (s *Server) Swap(index apidex.Index) {
	s.current.Store(&holder{index: index})
}

// ServeStdio registers the tools and serves requests over stdio until
// the client disconnects.
func (s *Server) ServeStdio() error {
	m := server.NewMCPServer(
		"apidex",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("apidex provides searchable API documentation. Use list_apis to see available APIs, search_endpoints to find endpoints by keyword, and get_endpoint_details for parameters and examples."),
	)

	s.registerTools(m)

	s.logger.Info("serving", "transport", "stdio", "endpoints", s.Index().Count())

	return server.ServeStdio(m)
}

func (s *Server) registerTools(m *server.MCPServer) {
	m.AddTool(
		mcp.NewTool("list_apis",
			mcp.WithDescription("List all indexed APIs with their descriptions, sections, and endpoint counts"),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.handleListAPIs()
		},
	)

	m.AddTool(
		mcp.NewTool("search_endpoints",
			mcp.WithDescription("Search for API endpoints by keyword across paths, summaries, descriptions, and parameters"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query (e.g. \"create table\", \"upload file\")")),
			mcp.WithString("api_filter", mcp.Description("Filter by API name substring (e.g. \"storage\")")),
			mcp.WithString("method_filter", mcp.Description("Filter by HTTP method (GET, POST, PUT, DELETE, PATCH)")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 10)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			query := mcp.ParseString(req, "query", "")
			opts := apidex.SearchOptions{
				API:    mcp.ParseString(req, "api_filter", ""),
				Method: mcp.ParseString(req, "method_filter", ""),
				Limit:  mcp.ParseInt(req, "limit", 0),
			}
			return s.handleSearch(query, opts)
		},
	)

	m.AddTool(
		mcp.NewTool("get_endpoint_details",
			mcp.WithDescription("Get full details for a specific endpoint including parameters and request/response examples"),
			mcp.WithString("api_name", mcp.Required(), mcp.Description("Name of the API")),
			mcp.WithString("path", mcp.Required(), mcp.Description("URL path (e.g. /v2/storage/tables)")),
			mcp.WithString("method", mcp.Required(), mcp.Description("HTTP method")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.handleEndpointDetails(
				mcp.ParseString(req, "api_name", ""),
				mcp.ParseString(req, "path", ""),
				mcp.ParseString(req, "method", ""),
			)
		},
	)

	m.AddTool(
		mcp.NewTool("get_api_section",
			mcp.WithDescription("List all endpoints in an API, optionally restricted to one section"),
			mcp.WithString("api_name", mcp.Required(), mcp.Description("Name of the API")),
			mcp.WithString("section_name", mcp.Description("Section name substring (e.g. \"Tables\"); omit for all endpoints")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.handleAPISection(
				mcp.ParseString(req, "api_name", ""),
				mcp.ParseString(req, "section_name", ""),
			)
		},
	)

	m.AddTool(
		mcp.NewTool("list_sections",
			mcp.WithDescription("List all sections in an API"),
			mcp.WithString("api_name", mcp.Required(), mcp.Description("Name of the API")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.handleListSections(mcp.ParseString(req, "api_name", ""))
		},
	)

	m.AddTool(
		mcp.NewTool("get_request_example",
			mcp.WithDescription("Generate a curl command example for an endpoint"),
			mcp.WithString("api_name", mcp.Required(), mcp.Description("Name of the API")),
			mcp.WithString("path", mcp.Required(), mcp.Description("URL path")),
			mcp.WithString("method", mcp.Required(), mcp.Description("HTTP method")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.handleRequestExample(
				mcp.ParseString(req, "api_name", ""),
				mcp.ParseString(req, "path", ""),
				mcp.ParseString(req, "method", ""),
			)
		},
	)

	if s.refresh != nil {
		m.AddTool(
			mcp.NewTool("refresh_docs",
				mcp.WithDescription("Re-fetch documentation sources and rebuild the search index"),
			),
			func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return s.handleRefresh(ctx)
			},
		)
	}
}
