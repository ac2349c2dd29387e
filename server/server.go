// Package server exposes the jump commands as MCP tools over stdio.
package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const Name = "graphql-jump"

// New creates the MCP server and registers the tools handled by h
func New(h *Handler, version string) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(false),
	)

	goTool := mcp.NewTool("go_graphql",
		mcp.WithDescription("Jump to the GraphQL query, mutation, subscription, fragment or enum declaration named by term. "+
			"Suffixes Query, Mutation, Fragment and Subscription are stripped before searching."),
		mcp.WithString("term",
			mcp.Required(),
			mcp.Description("Identifier to look up, e.g. UserQuery or FooBarFragment"),
		),
	)
	s.AddTool(goTool, h.GoGraphql)

	wordTool := mcp.NewTool("go_graphql_current_word",
		mcp.WithDescription("Jump to the GraphQL declaration named by the word at a caret position"),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Document path, absolute or relative to the workspace root"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("1-based line of the caret"),
		),
		mcp.WithNumber("column",
			mcp.Required(),
			mcp.Description("1-based column of the caret"),
		),
	)
	s.AddTool(wordTool, h.GoGraphqlCurrentWord)

	locateTool := mcp.NewTool("locate_graphql",
		mcp.WithDescription("Find the GraphQL declaration named by term without opening it. Returns every matching line."),
		mcp.WithString("term",
			mcp.Required(),
			mcp.Description("Identifier to look up"),
		),
	)
	s.AddTool(locateTool, h.Locate)

	return s
}
