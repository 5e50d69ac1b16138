package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bekerk/hotspot/core"
	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
	mgr     contract.CacheManager
}

// fixHotspotsResponse is the JSON body returned by get_fix_hotspots.
type fixHotspotsResponse struct {
	Repo       string                      `json:"repo"`
	Ref        string                      `json:"ref"`
	Marker     string                      `json:"marker"`
	Window     schema.TimeWindow           `json:"window"`
	FixCommits int                         `json:"fix_commits"`
	Skipped    int                         `json:"skipped"`
	Files      []schema.EnrichedFileResult `json:"files"`
}

func (h *toolHandler) handleGetFixHotspots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		root, err := h.client.GetRepoRoot(ctx, p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid repo_path: %v", err)), nil
		}
		cfg.RepoPath = root
		// The implicit filter belongs to the server's own working directory.
		cfg.PathFilter = ""
	}

	err := contract.RevalidateAnalysis(cfg,
		request.GetString("ref", ""),
		request.GetString("marker", ""),
		request.GetInt("limit", 0),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	output, err := core.GetHotspotFilesResults(ctx, cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	resp := fixHotspotsResponse{
		Repo:       cfg.RepoPath,
		Ref:        cfg.Ref,
		Marker:     cfg.Marker,
		Window:     output.Window,
		FixCommits: output.FixCommits,
		Skipped:    output.Skipped,
		Files:      schema.EnrichFiles(output.FileResults),
	}
	jsonData, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode results: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
