// Package mcp exposes the story-generation pipeline over the Model
// Context Protocol so agents can introspect components and scaffold
// stories without shelling out to the CLI.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/flight505/storygen/pkg/inventory"
	"github.com/flight505/storygen/pkg/mcplog"
	"github.com/flight505/storygen/pkg/scanner"
	"github.com/flight505/storygen/pkg/story"
)

const serverVersion = "0.1.0"

// Server implements the MCP server, exposing parse, variant inference,
// story generation, project scanning and inventory lookup tools.
type Server struct {
	mcpServer *server.MCPServer
	inv       *inventory.Inventory
	scanner   *scanner.Scanner
	emitter   *story.Emitter
	toolLog   *mcplog.Logger // may be nil (disabled)
	logger    *slog.Logger
}

// Config wires the server's collaborators.
type Config struct {
	Inventory *inventory.Inventory
	Scanner   *scanner.Scanner
	Emitter   *story.Emitter

	// ToolLog receives one JSONL entry per tool call; nil disables it.
	ToolLog *mcplog.Logger
	Logger  *slog.Logger
}

// NewServer creates an MCP server over the given pipeline components.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		inv:     cfg.Inventory,
		scanner: cfg.Scanner,
		emitter: cfg.Emitter,
		toolLog: cfg.ToolLog,
		logger:  cfg.Logger,
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if s.toolLog != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("storygen", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: parseComponentTool(), Handler: s.handleParseComponent},
		server.ServerTool{Tool: inferVariantsTool(), Handler: s.handleInferVariants},
		server.ServerTool{Tool: generateStoryTool(), Handler: s.handleGenerateStory},
		server.ServerTool{Tool: scanProjectTool(), Handler: s.handleScanProject},
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
