package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/roll/internal/mcp/domain"
)

func registerRollTools(mcpServer *mcp.Server, recorder domain.Recorder) {
	mcp.AddTool(mcpServer, domain.ParseRollTool(), domain.ParseRollHandler())
	mcp.AddTool(mcpServer, domain.RollTool(), domain.RollHandler(recorder))
	mcp.AddTool(mcpServer, domain.RollOutcomeTool(), domain.RollOutcomeHandler(recorder))
}
