package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/archlint/archlint/internal/adapters/outbound/collector"
	"github.com/archlint/archlint/internal/adapters/outbound/config"
	"github.com/archlint/archlint/internal/adapters/outbound/gitinfo"
	"github.com/archlint/archlint/internal/application"
	"github.com/archlint/archlint/internal/domain"
	"github.com/archlint/archlint/internal/domain/rules"
)

// registerTools registers all archlint MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	s.AddTool(
		mcplib.NewTool("archlint_check",
			mcplib.WithDescription("Run the full architecture rule battery and return the report as JSON"),
		),
		handleCheck(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("archlint_check_file",
			mcplib.WithDescription("Run the rule battery and return only the violations touching a single file"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the file, relative to the source root"),
			),
		),
		handleCheckFile(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("archlint_list_rules",
			mcplib.WithDescription("Return the rule battery (names and sections) in execution order"),
		),
		handleListRules(projectPath),
	)
}

func newRunService() *application.RunService {
	return application.NewRunService(collector.New(), config.New(), gitinfo.New())
}

func handleCheck(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := newRunService().Run(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleCheckFile(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := newRunService().Run(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}

		type fileFinding struct {
			Rule      string           `json:"rule"`
			Violation domain.Violation `json:"violation"`
		}
		findings := []fileFinding{}
		for _, r := range report.Results {
			for _, v := range r.Violations {
				if v.File == file {
					findings = append(findings, fileFinding{Rule: r.Name, Violation: v})
				}
			}
		}
		return jsonResult(findings)
	}
}

func handleListRules(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		absPath, err := filepath.Abs(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("resolving path: %v", err)), nil
		}

		cfg, err := config.New().Load(absPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		srcRoot := filepath.Join(absPath, filepath.FromSlash(cfg.SourceRoot))
		battery := rules.Build(srcRoot, cfg, collector.New())

		type ruleInfo struct {
			Name    string `json:"name"`
			Section string `json:"section"`
		}
		infos := make([]ruleInfo, 0, len(battery))
		for _, r := range battery {
			infos = append(infos, ruleInfo{Name: r.Name, Section: r.Section})
		}
		return jsonResult(infos)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
