//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package server

import (
	"context"

	mcp "trpc.group/trpc-go/trpc-mcp-go"

	"github.com/aynumosir/ainu-mcp-go/prompt"
)

// callTool is the MCP tools/call handler. Failures travel inside the
// result; the returned error is always nil so the session stays open.
func (s *Server) callTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	env := s.registry.Dispatch(ctx, req.Params.Name, req.Params.Arguments)
	return env.CallToolResult(), nil
}

// getPrompt is the MCP prompts/get handler.
func (s *Server) getPrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	res, err := s.prompts.Get(req.Params.Name)
	if err != nil {
		return nil, err
	}
	return toGetPromptResult(res), nil
}

func toGetPromptResult(res *prompt.Result) *mcp.GetPromptResult {
	out := &mcp.GetPromptResult{Description: res.Description}
	for _, m := range res.Messages {
		out.Messages = append(out.Messages, mcp.PromptMessage{
			Role:    mcp.RoleUser,
			Content: mcp.NewTextContent(m.Content.Text),
		})
	}
	return out
}

func (s *Server) mcpTools() []*mcp.Tool {
	defs := s.registry.List()
	tools := make([]*mcp.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, def.Schema.MCPTool(def.Name, def.Description))
	}
	return tools
}

func (s *Server) mcpPrompts() []*mcp.Prompt {
	var out []*mcp.Prompt
	for _, p := range s.prompts.List() {
		out = append(out, &mcp.Prompt{Name: p.Name, Description: p.Description})
	}
	return out
}

// mountStdio registers every tool and prompt on a stdio server.
func (s *Server) mountStdio(srv *mcp.StdioServer) {
	for _, tool := range s.mcpTools() {
		srv.RegisterTool(tool, s.callTool)
	}
	for _, p := range s.mcpPrompts() {
		srv.RegisterPrompt(p, s.getPrompt)
	}
}

// mountHTTP registers every tool and prompt on a streamable HTTP server.
func (s *Server) mountHTTP(srv *mcp.Server) {
	for _, tool := range s.mcpTools() {
		srv.RegisterTool(tool, s.callTool)
	}
	for _, p := range s.mcpPrompts() {
		srv.RegisterPrompt(p, s.getPrompt)
	}
}
