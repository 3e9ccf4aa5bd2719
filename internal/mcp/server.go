package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/avickers/codepatch-mcp/internal/engine"
)

const (
	// ServerName is the MCP server name
	ServerName = "codepatch-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the patch engine.
type Server struct {
	mcp    *server.MCPServer
	engine *engine.Engine
	log    *slog.Logger
}

// NewServer creates a new MCP server instance. A nil logger falls back
// to slog.Default().
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:    mcpServer,
		engine: engine.New(logger, nil),
		log:    logger,
	}

	s.registerTools()

	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(chunkFileTool(), s.handleChunkFile)
	s.mcp.AddTool(selectChunksTool(), s.handleSelectChunks)
	s.mcp.AddTool(parseEditsTool(), s.handleParseEdits)
	s.mcp.AddTool(applyEditsTool(), s.handleApplyEdits)
}
