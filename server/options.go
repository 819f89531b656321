//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package server

import "time"

const (
	// DefaultName is the server name announced to MCP clients.
	DefaultName = "Ainu MCP Server"
	// DefaultVersion is the server version announced to MCP clients.
	DefaultVersion = "0.0.1"
	// DefaultAddr is the listen address of the HTTP transport.
	DefaultAddr = ":8080"
	// DefaultMCPPath is where the streamable MCP endpoint is mounted.
	DefaultMCPPath = "/mcp"
	// DefaultBasePath prefixes the REST endpoints.
	DefaultBasePath = "/v1"

	defaultShutdownTimeout = 5 * time.Second
)

// Option configures the Server.
type Option func(*options)

type options struct {
	name            string
	version         string
	mcpPath         string
	basePath        string
	allowedOrigins  []string
	shutdownTimeout time.Duration
}

func newOptions(opts ...Option) *options {
	o := &options{
		name:            DefaultName,
		version:         DefaultVersion,
		mcpPath:         DefaultMCPPath,
		basePath:        DefaultBasePath,
		allowedOrigins:  []string{"*"},
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithName sets the server name.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithVersion sets the server version.
func WithVersion(version string) Option {
	return func(o *options) {
		if version != "" {
			o.version = version
		}
	}
}

// WithMCPPath sets the path of the streamable MCP endpoint.
// Default is "/mcp".
func WithMCPPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.mcpPath = path
		}
	}
}

// WithBasePath sets the prefix of the REST endpoints.
// Default is "/v1".
func WithBasePath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.basePath = path
		}
	}
}

// WithAllowedOrigins sets the CORS origins of the HTTP transport.
func WithAllowedOrigins(origins ...string) Option {
	return func(o *options) {
		if len(origins) > 0 {
			o.allowedOrigins = origins
		}
	}
}

// WithShutdownTimeout bounds the graceful shutdown of the HTTP transport.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}
