// Package server exposes focusd's inspection and focus operations over the
// Model Context Protocol, so agents can query displays and steer focus
// without shelling out to the CLI.
package server

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/focusd/internal/config"
	"github.com/mj1618/focusd/internal/platform"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// Server wraps the MCP server with the platform provider and window cache.
type Server struct {
	provider *platform.Provider
	cfg      *config.Config
	cache    *windowCache
	mcp      *mcpserver.MCPServer
}

// New creates an MCP server with all focusd tools registered.
func New(cfg Config, appCfg *config.Config) (*Server, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	s := &Server{
		provider: provider,
		cfg:      appCfg,
		cache:    newWindowCache(cfg.CacheTTL),
	}
	s.mcp = mcpserver.NewMCPServer("focusd", "1.0.0")
	s.registerTools()
	return s, nil
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List on-screen windows front-to-back with app, title, PID, bounds, and display"),
			mcp.WithString("app", mcp.Description("Filter by application name")),
			mcp.WithNumber("pid", mcp.Description("Filter by process ID")),
			mcp.WithNumber("display", mcp.Description("Filter by display ID")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_displays",
			mcp.WithDescription("List connected displays with their bounds and the current pointer position"),
		),
		s.handleListDisplays,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_window",
			mcp.WithDescription("Raise and focus a window by its system window ID"),
			mcp.WithNumber("window-id", mcp.Description("System window ID"), mcp.Required()),
		),
		s.handleFocusWindow,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_display",
			mcp.WithDescription("Focus the best candidate window on a display: topmost visible standard window not on the exclusion list"),
			mcp.WithNumber("display", mcp.Description("Display ID"), mcp.Required()),
		),
		s.handleFocusDisplay,
	)

	s.mcp.AddTool(
		mcp.NewTool("permissions",
			mcp.WithDescription("Check whether focusd has the accessibility permission it needs"),
		),
		s.handlePermissions,
	)
}
