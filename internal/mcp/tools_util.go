// tools_util.go provides helpers for MCP tool parameter extraction and
// result encoding.
//
// Extraction is permissive: an optional parameter that is missing or of
// the wrong type yields the default rather than an error, since LLM clients
// often omit optional arguments or send them in unexpected shapes.

package mcp

import (
	"github.com/jpl-au/skilld/internal/format"
	"github.com/jpl-au/skilld/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter, returning def if it is missing or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getInt extracts an integer parameter. JSON numbers decode as float64, so
// the value is asserted as float64 and truncated.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

// getRequests extracts the batch request array. Elements that are not
// objects, or that have no domain, are skipped.
func getRequests(req mcp.CallToolRequest, name string) []service.BatchRequest {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	arr, ok := args[name].([]any)
	if !ok {
		return nil
	}
	reqs := make([]service.BatchRequest, 0, len(arr))
	for _, v := range arr {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		domain, _ := m["domain"].(string)
		if domain == "" {
			continue
		}
		sub, _ := m["sub_skill"].(string)
		reqs = append(reqs, service.BatchRequest{Domain: domain, SubSkill: sub})
	}
	return reqs
}

// jsonResult serialises v as indented JSON in an MCP text result. Marshal
// failures become error results, like every other tool failure.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := format.JSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
