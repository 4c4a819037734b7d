package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewArchlintMCPServer creates an MCP server with the archlint tools and
// resources registered. The projectPath is the root of the project to check.
func NewArchlintMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"archlint",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
