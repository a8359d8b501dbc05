package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/showcase/pkg/mcplog"
)

// journalMiddleware records every tool call with the store revision before
// and after it. Only installed when s.calls is non-nil.
func (s *Server) journalMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			call := mcplog.Begin(req, s.store.Revision())
			result, err := next(ctx, req)
			call.End(result, err, s.store.Revision())
			if werr := s.calls.Record(call); werr != nil {
				s.logger.Warn("failed to record MCP call", "tool", call.Tool, "error", werr)
			}
			return result, err
		}
	}
}
