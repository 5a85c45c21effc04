package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/linger/internal/adapters/mcpserver"
	"go.trai.ch/linger/internal/app"
	"go.trai.ch/linger/internal/build"
	"go.trai.ch/linger/internal/core/domain"
)

func (c *CLI) newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analyze tool over MCP on stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := mcpserver.NewServer(build.Version, c.analyzeForMCP, c.logger)
			return srv.Listen(cmd.Context(), c.stdin, cmd.OutOrStdout())
		},
	}
}

func (c *CLI) analyzeForMCP(ctx context.Context, req mcpserver.Request) (*domain.Analysis, error) {
	return c.app.Analyze(ctx, app.AnalyzeRequest{
		FilePath:   req.File,
		WorkingDir: req.WorkDir,
		Buffer:     req.Buffer,
	})
}
