//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package registry maps tool names to their schema and handler and
// dispatches calls to them.
package registry

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aynumosir/ainu-mcp-go/log"
	"github.com/aynumosir/ainu-mcp-go/protocol"
	"github.com/aynumosir/ainu-mcp-go/schema"
	"github.com/aynumosir/ainu-mcp-go/telemetry"
)

// Handler runs a tool with validated parameters.
type Handler func(ctx context.Context, params schema.Params) (string, error)

// ToolDefinition is a registered tool.
type ToolDefinition struct {
	Name        string
	Description string
	Schema      *schema.Schema
	Handler     Handler
}

// ErrFrozen is returned by Register after Freeze.
var ErrFrozen = errors.New("registry is frozen")

// UnknownToolError reports a call to a tool that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// Kind implements protocol.Kinded.
func (e *UnknownToolError) Kind() protocol.Kind { return protocol.KindUnknownTool }

// PanicError is a handler panic recovered by Dispatch.
type PanicError struct {
	Tool  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("tool %q panicked: %v", e.Tool, e.Value)
}

// Kind implements protocol.Kinded.
func (e *PanicError) Kind() protocol.Kind { return protocol.KindInternal }

type requestIDKey struct{}

// RequestID returns the id Dispatch attached to ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Registry is the tool table. It is built at startup, frozen, and then
// shared read-only by every transport.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*ToolDefinition
	order  []string
	frozen bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{tools: make(map[string]*ToolDefinition)}
}

// Register adds a tool.
func (r *Registry) Register(def ToolDefinition) error {
	if def.Name == "" {
		return errors.New("tool name is empty")
	}
	if def.Schema == nil {
		return fmt.Errorf("tool %q has no schema", def.Name)
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %q has no handler", def.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return fmt.Errorf("register %q: %w", def.Name, ErrFrozen)
	}
	if _, ok := r.tools[def.Name]; ok {
		return fmt.Errorf("tool %q already registered", def.Name)
	}
	d := def
	r.tools[def.Name] = &d
	r.order = append(r.order, def.Name)
	return nil
}

// Freeze makes the table immutable.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Lookup returns the named tool.
func (r *Registry) Lookup(name string) (ToolDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	if !ok {
		return ToolDefinition{}, false
	}
	return *def, true
}

// List returns the tools in registration order.
func (r *Registry) List() []ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, *r.tools[name])
	}
	return defs
}

// Dispatch validates raw against the named tool's schema, runs the handler
// and wraps the outcome. It never panics and never returns nil.
func (r *Registry) Dispatch(ctx context.Context, name string, raw map[string]any) (env *protocol.Envelope) {
	requestID := uuid.NewString()
	ctx = context.WithValue(ctx, requestIDKey{}, requestID)
	ctx, span := telemetry.StartToolSpan(ctx, name, requestID)
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			log.Errorf("tool %s request %s panicked: %v\n%s", name, requestID, p, debug.Stack())
			env = protocol.Failure(&PanicError{Tool: name, Value: p})
		}
		var err error
		if env.IsError {
			err = env.Error
			log.Warnf("tool %s request %s failed in %s: %v", name, requestID, time.Since(start), err)
		} else {
			log.Infof("tool %s request %s done in %s", name, requestID, time.Since(start))
		}
		telemetry.EndToolSpan(ctx, span, name, start, err)
	}()

	def, ok := r.Lookup(name)
	if !ok {
		return protocol.Failure(&UnknownToolError{Name: name})
	}
	params, err := def.Schema.Validate(raw)
	if err != nil {
		return protocol.Failure(err)
	}
	result, err := def.Handler(ctx, params)
	if err != nil {
		return protocol.Failure(err)
	}
	return protocol.Text(result)
}
