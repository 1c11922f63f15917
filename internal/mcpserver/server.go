package mcpserver

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
)

// Server exposes the mock stylist as MCP tools. It only speaks stdio;
// nothing is served over the network.
type Server struct {
	catalog   *catalog.Catalog
	task      stylist.TaskConfig
	version   string
	mcpServer *server.MCPServer
	mu        sync.Mutex
}

// New creates a server backed by cat. task paces analyze-style runs.
func New(cat *catalog.Catalog, task stylist.TaskConfig, version string) *Server {
	return &Server{catalog: cat, task: task, version: version}
}

// build registers tools once.
func (s *Server) build() (*server.MCPServer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mcpServer != nil {
		return s.mcpServer, nil
	}

	s.mcpServer = server.NewMCPServer(
		"styleai",
		s.version,
		server.WithToolCapabilities(true),
	)
	if err := s.registerTools(); err != nil {
		s.mcpServer = nil
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	return s.mcpServer, nil
}

// Serve speaks MCP over in/out until ctx is cancelled or in closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	mcpServer, err := s.build()
	if err != nil {
		return err
	}

	logger.Info("MCP server listening on stdio")
	stdio := server.NewStdioServer(mcpServer)
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	logger.Info("MCP server stopped")
	return nil
}
