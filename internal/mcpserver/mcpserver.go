// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver exposes the registry as Model Context Protocol tools
// over stdio. Each registered function becomes one tool whose input schema
// is the function's JSON Schema; tool results are JSON envelopes.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pdiddy/research-analytics/internal/errors"
	"github.com/pdiddy/research-analytics/internal/logger"
	"github.com/pdiddy/research-analytics/internal/registry"
)

// ServerName identifies this server to MCP clients.
const ServerName = "research-analytics"

// Server wraps an MCP server bound to one registry.
type Server struct {
	reg    *registry.Registry
	server *server.MCPServer
}

// New registers every function of reg as a tool.
func New(reg *registry.Registry, version string) (*Server, error) {
	tools, err := Tools(reg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		reg:    reg,
		server: server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false)),
	}
	for _, tool := range tools {
		s.server.AddTool(tool, s.handle)
	}
	return s, nil
}

// Tools renders the registry as MCP tool definitions, in registration
// order.
func Tools(reg *registry.Registry) ([]mcp.Tool, error) {
	tools := make([]mcp.Tool, 0, reg.Len())
	for _, name := range reg.Names() {
		spec, _ := reg.Lookup(name)
		raw, err := json.Marshal(spec.Parameters.JSONSchema())
		if err != nil {
			return nil, errors.Wrapf(err, "rendering input schema of %s", name)
		}
		tools = append(tools, mcp.NewToolWithRawSchema(name, spec.Description, raw))
	}
	return tools, nil
}

// handle invokes the function named by the tool call. Failed invocations
// are tool errors carrying the envelope, so the model sees the error code
// and field detail.
func (s *Server) handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	env := s.reg.Invoke(ctx, req.Params.Name, req.GetArguments())
	data, err := json.Marshal(env)
	if err != nil {
		return mcp.NewToolResultError("encoding result: " + err.Error()), nil
	}
	if !env.Success {
		return mcp.NewToolResultError(string(data)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ServeStdio serves MCP on stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	logger.Logger.Infow("mcp server starting on stdio", "tools", s.reg.Len())
	if err := server.ServeStdio(s.server); err != nil {
		return errors.Wrap(err, "serving mcp")
	}
	logger.Logger.Infow("mcp server stopped")
	return nil
}
