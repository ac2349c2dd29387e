package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/takaishi/graphql-jump/jump"
)

// Handler adapts MCP tool calls to the jump commands
type Handler struct {
	jumper *jump.Jumper
	host   jump.Host
}

// NewHandler creates a Handler. host supplies the workspace root; the caret
// comes from the tool arguments.
func NewHandler(j *jump.Jumper, host jump.Host) *Handler {
	return &Handler{jumper: j.WithHost(host), host: host}
}

// GoGraphql handles go_graphql
func (h *Handler) GoGraphql(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term, err := req.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError("term parameter is required"), nil
	}

	out, err := h.jumper.GoGraphql(ctx, term)
	return outcomeResult(out, err)
}

// GoGraphqlCurrentWord handles go_graphql_current_word
func (h *Handler) GoGraphqlCurrentWord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file parameter is required"), nil
	}
	line := req.GetInt("line", 0)
	column := req.GetInt("column", 0)
	if line < 1 || column < 1 {
		return mcp.NewToolResultError("line and column must be 1-based positive numbers"), nil
	}

	root, _ := h.host.WorkspaceRoot()
	host := jump.StaticHost{
		Root:      root,
		Selection: &jump.Selection{File: file, Line: line, Column: column},
	}

	out, err := h.jumper.WithHost(host).GoGraphqlCurrentWord(ctx)
	return outcomeResult(out, err)
}

// Locate handles locate_graphql
func (h *Handler) Locate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term, err := req.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError("term parameter is required"), nil
	}

	out, err := h.jumper.Find(ctx, term)
	return outcomeResult(out, err)
}

// outcomeResult renders out as JSON text, or err as a tool error
func outcomeResult(out *jump.Outcome, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
