package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/apidex/apidex"
	"github.com/mark3labs/mcp-go/mcp"
)

// endpointSummary is the compact listing form of an endpoint.
type endpointSummary struct {
	APIName string `json:"api_name"`
	Section string `json:"section"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary"`
}

func summarize(endpoints []*apidex.Endpoint) []endpointSummary {
	summaries := make([]endpointSummary, len(endpoints))
	for i, e := range endpoints {
		summaries[i] = endpointSummary{
			APIName: e.APIName,
			Section: e.Section,
			Method:  e.Method,
			Path:    e.Path,
			Summary: e.Summary,
		}
	}
	return summaries
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleListAPIs() (*mcp.CallToolResult, error) {
	return jsonResult(s.Index().APIs())
}

func (s *Server) handleSearch(query string, opts apidex.SearchOptions) (*mcp.CallToolResult, error) {
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	results := s.Index().Search(query, opts)
	if len(results) == 0 {
		return mcp.NewToolResultText("No matching endpoints."), nil
	}
	return jsonResult(summarize(results))
}

func (s *Server) handleEndpointDetails(apiName, path, method string) (*mcp.CallToolResult, error) {
	if apiName == "" || path == "" || method == "" {
		return mcp.NewToolResultError("api_name, path, and method are required"), nil
	}
	e, err := s.Index().Endpoint(apiName, path, method)
	if err != nil {
		return mcp.NewToolResultError(apidex.ErrorMessage(err)), nil
	}
	return jsonResult(e)
}

func (s *Server) handleAPISection(apiName, section string) (*mcp.CallToolResult, error) {
	if apiName == "" {
		return mcp.NewToolResultError("api_name is required"), nil
	}
	endpoints := s.Index().APIEndpoints(apiName, section)
	if len(endpoints) == 0 {
		return mcp.NewToolResultText("No endpoints found."), nil
	}
	return jsonResult(summarize(endpoints))
}

func (s *Server) handleListSections(apiName string) (*mcp.CallToolResult, error) {
	if apiName == "" {
		return mcp.NewToolResultError("api_name is required"), nil
	}
	sections := s.Index().Sections(apiName)
	return jsonResult(sections)
}

func (s *Server) handleRequestExample(apiName, path, method string) (*mcp.CallToolResult, error) {
	if apiName == "" || path == "" || method == "" {
		return mcp.NewToolResultError("api_name, path, and method are required"), nil
	}
	e, err := s.Index().Endpoint(apiName, path, method)
	if err != nil {
		return mcp.NewToolResultError(apidex.ErrorMessage(err)), nil
	}
	return mcp.NewToolResultText(CurlExample(e)), nil
}

func (s *Server) handleRefresh(ctx context.Context) (*mcp.CallToolResult, error) {
	index, err := s.refresh(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("refresh failed: %v", err)), nil
	}
	s.Swap(index)
	s.logger.Info("index refreshed", "endpoints", index.Count())
	return mcp.NewToolResultText(fmt.Sprintf("Rebuilt index with %d endpoints.", index.Count())), nil
}

// CurlExample synthesizes a curl command for an endpoint.
func CurlExample(e *apidex.Endpoint) string {
	parts := []string{"curl"}

	if e.Method != "GET" {
		parts = append(parts, "-X "+e.Method)
	}

	url := strings.TrimRight(e.BaseURL, "/") + e.Path
	parts = append(parts, fmt.Sprintf("%q", url))

	if e.AuthHeader != "" {
		parts = append(parts, fmt.Sprintf(`-H "%s: YOUR_TOKEN"`, e.AuthHeader))
	}

	if e.Method == "POST" || e.Method == "PUT" || e.Method == "PATCH" {
		parts = append(parts, `-H "Content-Type: application/json"`)

		if e.RequestExample != "" {
			parts = append(parts, fmt.Sprintf("-d '%s'", compactJSON(e.RequestExample)))
		}
	}

	return strings.Join(parts, " \\\n  ")
}

// compactJSON collapses an indented JSON example onto one line,
// falling back to whitespace stripping for non-JSON text.
func compactJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err == nil {
		return buf.String()
	}
	return strings.Join(strings.Fields(s), " ")
}
