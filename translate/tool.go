//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package translate

import (
	"context"

	"github.com/aynumosir/ainu-mcp-go/gateway"
	"github.com/aynumosir/ainu-mcp-go/log"
	"github.com/aynumosir/ainu-mcp-go/registry"
	"github.com/aynumosir/ainu-mcp-go/schema"
)

// ToolName is the registered name of the translation tool.
const ToolName = "ainu_translate"

// ToolDescription is shown to agents listing the tools.
const ToolDescription = "Translate text between Japanese and Ainu. " +
	"Supports the major Ainu dialects and both the first person and fourth person pronoun registers."

type toolOptions struct {
	rejectSameLanguage bool
	options            gateway.Options
}

// ToolOption configures the translation tool.
type ToolOption func(*toolOptions)

// WithRejectSameLanguage makes calls whose source equals target fail with
// an InvalidValue error on target instead of using the Ainu to Japanese
// template.
func WithRejectSameLanguage(reject bool) ToolOption {
	return func(o *toolOptions) { o.rejectSameLanguage = reject }
}

// NewTool returns the ainu_translate definition backed by g.
func NewTool(g gateway.Gateway, opts ...ToolOption) registry.ToolDefinition {
	o := toolOptions{options: gateway.DefaultOptions}
	for _, opt := range opts {
		opt(&o)
	}
	return registry.ToolDefinition{
		Name:        ToolName,
		Description: ToolDescription,
		Schema:      Schema,
		Handler: func(ctx context.Context, params schema.Params) (string, error) {
			req := RequestFromParams(params)
			if o.rejectSameLanguage && req.Source == req.Target {
				return "", &schema.InvalidValueError{
					Name:    ParamTarget,
					Allowed: otherLanguages(req.Source),
					Got:     string(req.Target),
				}
			}
			prompt := BuildPrompt(req)
			log.Debugf("request %s prompt: %s", registry.RequestID(ctx), prompt)
			return gateway.First(ctx, g, prompt, o.options)
		},
	}
}

func otherLanguages(l Language) []string {
	var out []string
	for _, s := range Languages {
		if s != string(l) {
			out = append(out, s)
		}
	}
	return out
}
