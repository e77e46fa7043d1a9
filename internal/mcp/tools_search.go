// tools_search.go implements the MCP search tools. Both return ranked
// results as a JSON array; content results carry the file path and a
// snippet so the client can decide what to load without fetching it.

package mcp

import (
	"context"

	"github.com/jpl-au/skilld/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// searchSkills handles search_skills tool calls.
func (h *handlers) searchSkills(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.svc.Track("search_skills")

	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	results, err := h.svc.SearchSkills(query, getInt(req, "limit", 0))

	log.Event("mcp:search_skills", "search").Author("mcp").Detail("query", query).Detail("count", len(results)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

// searchContent handles search_content tool calls.
func (h *handlers) searchContent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.svc.Track("search_content")

	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	results, err := h.svc.SearchContent(query, getInt(req, "limit", 0))

	log.Event("mcp:search_content", "search").Author("mcp").Detail("query", query).Detail("count", len(results)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}
