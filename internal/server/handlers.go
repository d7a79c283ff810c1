package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
	"gopkg.in/yaml.v3"
)

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return def
}

func toYAML(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	appName := stringParam(params, "app", "")
	pid := intParam(params, "pid", 0)
	displayID := intParam(params, "display", 0)

	windows, err := s.cache.List(s.provider.WindowManager)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filtered := make([]model.Window, 0, len(windows))
	for _, w := range windows {
		if appName != "" && !strings.EqualFold(w.App, appName) {
			continue
		}
		if pid != 0 && w.PID != pid {
			continue
		}
		if displayID != 0 && w.DisplayID != displayID {
			continue
		}
		filtered = append(filtered, w)
	}
	return mcp.NewToolResultText(toYAML(filtered)), nil
}

func (s *Server) handleListDisplays(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	displays, err := s.provider.Screens.ListDisplays()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := struct {
		Displays []model.Display `yaml:"displays"`
		Pointer  *model.Point    `yaml:"pointer,omitempty"`
	}{Displays: displays}
	if pos, err := s.provider.Pointer.Position(); err == nil {
		result.Pointer = &pos
	}
	return mcp.NewToolResultText(toYAML(result)), nil
}

func (s *Server) handleFocusWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	windowID := intParam(params, "window-id", 0)
	if windowID == 0 {
		return mcp.NewToolResultError("window-id is required"), nil
	}

	if err := s.provider.WindowManager.RaiseAndFocus(windowID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.Invalidate()
	return mcp.NewToolResultText(fmt.Sprintf("focused window %d", windowID)), nil
}

func (s *Server) handleFocusDisplay(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	displayID := intParam(params, "display", 0)
	if displayID == 0 {
		return mcp.NewToolResultError("display is required"), nil
	}

	windows, err := s.cache.List(s.provider.WindowManager)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Same candidate rules the daemon applies: topmost visible standard
	// window on the display, skipping excluded apps.
	for _, w := range windows {
		if w.DisplayID != displayID || !w.Visible || w.Minimized || !w.Standard {
			continue
		}
		if s.excluded(w.App) {
			continue
		}
		if err := s.provider.WindowManager.RaiseAndFocus(w.ID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.cache.Invalidate()
		return mcp.NewToolResultText(fmt.Sprintf("focused %q (window %d) on display %d", w.App, w.ID, displayID)), nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("no candidate window on display %d", displayID)), nil
}

func (s *Server) handlePermissions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if platform.CheckPermissionsFunc == nil {
		return mcp.NewToolResultError(platform.ErrUnsupported.Error()), nil
	}
	if err := platform.CheckPermissionsFunc(); err != nil {
		return mcp.NewToolResultText(toYAML(map[string]interface{}{
			"accessibility": false,
			"detail":        err.Error(),
		})), nil
	}
	return mcp.NewToolResultText(toYAML(map[string]interface{}{"accessibility": true})), nil
}

func (s *Server) excluded(app string) bool {
	for _, name := range s.cfg.Focus.ExcludedApps {
		if strings.EqualFold(name, app) {
			return true
		}
	}
	return false
}
