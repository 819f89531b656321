//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package app wires configuration, gateway, registry and transport together
// and runs the two phase lifecycle: Initialize builds and probes everything,
// Serve accepts calls.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/dig"

	"github.com/aynumosir/ainu-mcp-go/config"
	"github.com/aynumosir/ainu-mcp-go/gateway"
	"github.com/aynumosir/ainu-mcp-go/log"
	"github.com/aynumosir/ainu-mcp-go/prompt"
	"github.com/aynumosir/ainu-mcp-go/registry"
	"github.com/aynumosir/ainu-mcp-go/server"
	"github.com/aynumosir/ainu-mcp-go/telemetry"
	"github.com/aynumosir/ainu-mcp-go/translate"
)

// App is an initialized server ready to serve.
type App struct {
	cfg      *config.Config
	gateway  gateway.Gateway
	registry *registry.Registry
	prompts  *prompt.Catalog
	server   *server.Server

	cleanTelemetry func() error
}

// Option configures Initialize.
type Option func(*initOptions)

type initOptions struct {
	backend gateway.Gateway
}

// WithBackend replaces the configured backend with g. Decorators and the
// cache are still applied.
func WithBackend(g gateway.Gateway) Option {
	return func(o *initOptions) { o.backend = g }
}

// Initialize validates cfg, builds every component and probes the gateway.
// Any failure here is fatal: no transport has been opened yet.
func Initialize(ctx context.Context, cfg *config.Config, opts ...Option) (a *App, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	o := &initOptions{}
	for _, opt := range opts {
		opt(o)
	}
	log.Configure(cfg.Log.Level, cfg.Log.JSON)

	a = &App{cfg: cfg}
	defer func() {
		if err != nil {
			if cerr := a.Close(); cerr != nil {
				log.Warnf("cleanup after failed initialization: %v", cerr)
			}
			a = nil
		}
	}()

	if cfg.Telemetry.Enabled {
		clean, err := telemetry.Start(ctx,
			telemetry.WithProtocol(cfg.Telemetry.Protocol),
			telemetry.WithEndpoint(cfg.Telemetry.Endpoint),
			telemetry.WithServiceVersion(cfg.Server.Version),
		)
		if err != nil {
			return a, fmt.Errorf("start telemetry: %w", err)
		}
		a.cleanTelemetry = clean
	}

	c := dig.New()
	provides := []any{
		func() *config.Config { return cfg },
		func() backendOverride { return backendOverride{o.backend} },
		newGateway,
		newRegistry,
		prompt.Default,
		newServer,
	}
	for _, p := range provides {
		if err := c.Provide(p); err != nil {
			return a, fmt.Errorf("provide: %w", err)
		}
	}
	// The gateway is resolved on its own first so a failing registry does
	// not leak an open backend.
	if err := c.Invoke(func(g gateway.Gateway) { a.gateway = g }); err != nil {
		return a, fmt.Errorf("build gateway: %w", dig.RootCause(err))
	}
	if err := c.Invoke(func(reg *registry.Registry, prompts *prompt.Catalog, srv *server.Server) {
		a.registry = reg
		a.prompts = prompts
		a.server = srv
	}); err != nil {
		return a, fmt.Errorf("build server: %w", dig.RootCause(err))
	}

	if cfg.Gateway.Probe {
		if err := a.probe(ctx); err != nil {
			return a, err
		}
	}
	return a, nil
}

func (a *App) probe(ctx context.Context) error {
	if a.cfg.Gateway.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Gateway.ProbeTimeout)
		defer cancel()
	}
	log.Infof("probing %s gateway (model %s)", a.cfg.Gateway.Backend, a.cfg.Gateway.Model)
	if err := gateway.Probe(ctx, a.gateway); err != nil {
		return fmt.Errorf("gateway probe failed: %w", err)
	}
	log.Infof("gateway ready")
	return nil
}

func newRegistry(cfg *config.Config, g gateway.Gateway) (*registry.Registry, error) {
	reg := registry.New()
	tool := translate.NewTool(g, translate.WithRejectSameLanguage(cfg.Translate.RejectSameLanguage))
	if err := reg.Register(tool); err != nil {
		return nil, err
	}
	reg.Freeze()
	return reg, nil
}

func newServer(cfg *config.Config, reg *registry.Registry, prompts *prompt.Catalog) *server.Server {
	return server.New(reg, prompts,
		server.WithName(cfg.Server.Name),
		server.WithVersion(cfg.Server.Version),
		server.WithMCPPath(cfg.Server.Path),
	)
}

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config { return a.cfg }

// Registry returns the frozen tool registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// Prompts returns the prompt catalog.
func (a *App) Prompts() *prompt.Catalog { return a.prompts }

// Server returns the transport server.
func (a *App) Server() *server.Server { return a.server }

// Serve runs the configured transport until it stops, ctx is done or the
// process receives SIGINT or SIGTERM. Resources are released on return.
func (a *App) Serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := a.server.Serve(ctx, a.cfg.Server.Transport, a.cfg.Server.Addr)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if cerr := a.Close(); cerr != nil {
		log.Warnf("close: %v", cerr)
	}
	return err
}

// Close releases the gateway, the cache and the telemetry exporters.
func (a *App) Close() error {
	var errs []error
	if a.gateway != nil {
		errs = append(errs, gateway.Close(a.gateway))
		a.gateway = nil
	}
	if a.cleanTelemetry != nil {
		errs = append(errs, a.cleanTelemetry())
		a.cleanTelemetry = nil
	}
	return errors.Join(errs...)
}
