package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer creates an MCP server exposing preference tools and
// resources, so agents and external tooling can inspect and adjust editor
// settings.
func NewMCPServer(deps Deps, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"inkwell-prefs",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("inkwell-prefs — read and change inkwell editor preferences (flags, font sizes, recent projects)."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("get_flag",
			mcp.WithDescription("Read a boolean preference flag. Unknown flags read as false."),
			mcp.WithString("name", mcp.Description("Flag name, e.g. editor.syntaxHighlighting"), mcp.Required()),
		),
		mcpGetFlag(deps),
	)

	s.AddTool(
		mcp.NewTool("set_flag",
			mcp.WithDescription("Set a boolean preference flag. Values matching the recorded default remove the stored override."),
			mcp.WithString("name", mcp.Description("Flag name"), mcp.Required()),
			mcp.WithBoolean("value", mcp.Description("New flag value"), mcp.Required()),
		),
		mcpSetFlag(deps),
	)

	s.AddTool(
		mcp.NewTool("set_editor_font_size",
			mcp.WithDescription("Set the editor font size in points. Non-positive sizes are rejected."),
			mcp.WithNumber("size", mcp.Description("Point size"), mcp.Required()),
		),
		mcpSetEditorFontSize(deps),
	)

	s.AddTool(
		mcp.NewTool("add_recent_project",
			mcp.WithDescription("Record a project path at the front of the recent-projects list."),
			mcp.WithString("path", mcp.Description("Absolute project path"), mcp.Required()),
		),
		mcpAddRecentProject(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"prefs://flags",
			"Preference Flags",
			mcp.WithResourceDescription("All known flags and their current values as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceFlags(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"prefs://recent",
			"Recent Projects",
			mcp.WithResourceDescription("Recent project paths, most recent first"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceRecent(deps),
	)

	return s
}

func mcpGetFlag(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcpError("name is required"), nil
		}
		return mcpText(fmt.Sprintf("%s = %t", name, deps.Prefs.Flag(name))), nil
	}
}

func mcpSetFlag(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcpError("name is required"), nil
		}
		value, err := req.RequireBool("value")
		if err != nil {
			return mcpError("value is required"), nil
		}
		deps.Prefs.SetFlag(name, value)
		return mcpText(fmt.Sprintf("set %s = %t", name, value)), nil
	}
}

func mcpSetEditorFontSize(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		size, err := req.RequireInt("size")
		if err != nil {
			return mcpError("size is required"), nil
		}
		if size <= 0 {
			return mcpError(fmt.Sprintf("size must be positive, got %d", size)), nil
		}
		deps.Prefs.SetEditorFontSize(size)
		return mcpText(fmt.Sprintf("editor font size set to %dpt", size)), nil
	}
}

func mcpAddRecentProject(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := req.RequireString("path")
		if err != nil {
			return mcpError("path is required"), nil
		}
		deps.Prefs.AddRecentProject(path)
		return mcpText(fmt.Sprintf("recorded %s", path)), nil
	}
}

func mcpResourceFlags(deps Deps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(deps.Prefs.Flags())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal flags: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpResourceRecent(deps Deps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(deps.Prefs.RecentProjects())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal recent projects: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
