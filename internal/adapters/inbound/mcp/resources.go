package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/archlint/archlint/internal/adapters/outbound/config"
	historyAdapter "github.com/archlint/archlint/internal/adapters/outbound/history"
)

// registerResources registers all archlint MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. archlint://config - effective configuration after defaults merge
	s.AddResource(
		mcplib.NewResource(
			"archlint://config",
			"Effective Configuration",
			mcplib.WithResourceDescription("Thresholds, domain list, and allowlists the rule battery runs with"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)

	// 2. archlint://history - recorded run summaries
	s.AddResource(
		mcplib.NewResource(
			"archlint://history",
			"Run History",
			mcplib.WithResourceDescription("Summaries of past check runs for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		absPath, err := filepath.Abs(projectPath)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}

		cfg, err := config.New().Load(absPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		absPath, err := filepath.Abs(projectPath)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}

		entries, err := historyAdapter.New().Load(absPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling history: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
