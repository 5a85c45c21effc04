// Package mcpserver exposes analyses to agents and editors over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.trai.ch/linger/internal/adapters/fs"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
	"go.trai.ch/linger/internal/ui/render"
)

// ToolAnalyze is the name of the analyze tool.
const ToolAnalyze = "analyze"

// Request is an analyze tool call.
type Request struct {
	File    string
	WorkDir string
	// Buffer is nil when the client sent no content.
	Buffer []string
}

// AnalyzeFunc answers one analyze tool call.
type AnalyzeFunc func(ctx context.Context, req Request) (*domain.Analysis, error)

// Server is an MCP server with the analyze tool registered.
type Server struct {
	server  *server.MCPServer
	analyze AnalyzeFunc
	logger  ports.Logger
}

// NewServer creates a Server that answers analyze calls with analyze.
func NewServer(version string, analyze AnalyzeFunc, logger ports.Logger) *Server {
	s := &Server{
		server: server.NewMCPServer(
			"linger",
			version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
		analyze: analyze,
		logger:  logger,
	}

	s.server.AddTool(mcp.NewTool(ToolAnalyze,
		mcp.WithDescription("Report golangci-lint issues for a Go file, placed against its current contents"),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path of the Go file to analyze"),
		),
		mcp.WithString("workdir",
			mcp.Description("Directory to run golangci-lint in; defaults to the file's directory"),
		),
		mcp.WithString("content",
			mcp.Description("Unsaved contents of the file, if the editor buffer differs from disk"),
		),
	), s.HandleAnalyze)

	return s
}

// Listen serves MCP over in and out until ctx is done or in is closed.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.server).Listen(ctx, in, out)
}

// HandleAnalyze is the analyze tool handler.
func (s *Server) HandleAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := Request{
		File:    file,
		WorkDir: request.GetString("workdir", ""),
	}
	if content, ok := request.GetArguments()["content"].(string); ok {
		req.Buffer = fs.SplitLines([]byte(content))
	}

	analysis, err := s.analyze(ctx, req)
	if err != nil {
		s.logger.Error(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := json.Marshal(render.NewAnalysisView(file, analysis))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
