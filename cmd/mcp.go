package cmd

import (
	"github.com/bekerk/hotspot/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the Hotspot MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents rank bug-fix hotspots
through the get_fix_hotspots tool. Flags and config act as defaults that each
tool call may override.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, gitClient, cacheManager)
	},
}
