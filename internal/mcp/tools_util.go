// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map.

package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// getInt64 returns an integer parameter as int64, or def if missing.
// MCP numbers decode as float64; revisions fit exactly in that range well
// past any repository this parser will ever see.
func getInt64(req mcp.CallToolRequest, name string, def int64) int64 {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int64(v)
	}
	return def
}

// jsonResult wraps a value as an MCP text result with JSON-encoded content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
