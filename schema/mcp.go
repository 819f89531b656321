//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package schema

import (
	mcp "trpc.group/trpc-go/trpc-mcp-go"
)

// MCPTool renders the schema as an MCP tool declaration.
func (s *Schema) MCPTool(name, description string) *mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(description)}
	for _, spec := range s.specs {
		opts = append(opts, mcp.WithString(spec.Name, propertyOptions(spec)...))
	}
	return mcp.NewTool(name, opts...)
}

func propertyOptions(spec ParameterSpec) []mcp.PropertyOption {
	var opts []mcp.PropertyOption
	if spec.Required && !spec.HasDefault() {
		opts = append(opts, mcp.Required())
	}
	if spec.Description != "" {
		opts = append(opts, mcp.Description(spec.Description))
	}
	if spec.Kind == KindEnum {
		opts = append(opts, mcp.Enum(spec.Domain...))
	}
	if spec.HasDefault() {
		opts = append(opts, mcp.Default(*spec.Default))
	}
	return opts
}
