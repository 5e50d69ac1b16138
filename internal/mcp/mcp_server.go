// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/bekerk/hotspot/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolGetFixHotspots is the name of the single tool exposed by the server.
const ToolGetFixHotspots = "get_fix_hotspots"

// NewMCPServer initializes and configures the Hotspot MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Hotspot Fix Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool(ToolGetFixHotspots,
		mcp.WithDescription("Rank files by how often and how recently they were touched by bug-fix commits."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the server's repository).")),
		mcp.WithString("ref", mcp.Description("Commit, branch or tag to walk history from. Defaults to HEAD.")),
		mcp.WithString("marker", mcp.Description("Case-insensitive substring identifying fix commits. Defaults to 'bug'.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned (0 keeps every file).")),
	), h.handleGetFixHotspots)

	return s
}

// StartMCPServer starts the Hotspot MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, client, mgr)
	return server.ServeStdio(s)
}
