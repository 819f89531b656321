//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package server exposes the tool registry and the prompt catalog over MCP.
// It speaks stdio for local agents and streamable HTTP, plus a small REST
// surface, for remote ones.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
	mcp "trpc.group/trpc-go/trpc-mcp-go"

	"github.com/aynumosir/ainu-mcp-go/log"
	"github.com/aynumosir/ainu-mcp-go/prompt"
	"github.com/aynumosir/ainu-mcp-go/registry"
)

// Transport names.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Server serves a frozen registry and a prompt catalog.
type Server struct {
	registry *registry.Registry
	prompts  *prompt.Catalog
	opts     *options
	handler  http.Handler
}

// New creates a Server. The registry is frozen here if it was not already.
func New(reg *registry.Registry, prompts *prompt.Catalog, opts ...Option) *Server {
	reg.Freeze()
	s := &Server{
		registry: reg,
		prompts:  prompts,
		opts:     newOptions(opts...),
	}
	s.handler = s.setupHandler()
	return s
}

// Handler returns the HTTP handler holding the MCP endpoint and the REST
// routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve runs the named transport until ctx is done or the transport stops.
func (s *Server) Serve(ctx context.Context, transport, addr string) error {
	switch transport {
	case "", TransportStdio:
		return s.ServeStdio(ctx)
	case TransportHTTP:
		return s.ServeHTTP(ctx, addr)
	default:
		return fmt.Errorf("unknown transport %q", transport)
	}
}

// ServeStdio speaks MCP over the process stdin and stdout. It returns when
// stdin closes or ctx is done.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcp.NewStdioServer(s.opts.name, s.opts.version,
		mcp.WithStdioServerLogger(log.Default),
	)
	s.mountStdio(srv)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	log.Infof("%s %s serving on stdio", s.opts.name, s.opts.version)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ServeHTTP listens on addr and shuts down gracefully when ctx is done.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: s.opts.shutdownTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("%s %s listening on %s (mcp at %s)", s.opts.name, s.opts.version, addr, s.opts.mcpPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Infof("http transport stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) setupHandler() http.Handler {
	mcpServer := mcp.NewServer(s.opts.name, s.opts.version,
		mcp.WithServerPath(s.opts.mcpPath),
	)
	s.mountHTTP(mcpServer)

	router := mux.NewRouter()
	router.Handle(s.opts.mcpPath, mcpServer.HTTPHandler())
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	// Routes stay on the root router so a method mismatch answers 405.
	base := strings.TrimSuffix(s.opts.basePath, "/")
	router.HandleFunc(base+"/tools", s.handleListTools).Methods(http.MethodGet)
	router.HandleFunc(base+"/tools/{name}", s.handleCallTool).Methods(http.MethodPost)
	router.HandleFunc(base+"/prompts", s.handleListPrompts).Methods(http.MethodGet)
	router.HandleFunc(base+"/prompts/{name}", s.handleGetPrompt).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Length", "Content-Type", "Mcp-Session-Id"},
	})
	return c.Handler(router)
}
