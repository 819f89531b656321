//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package app

import (
	"fmt"

	"github.com/aynumosir/ainu-mcp-go/cache"
	"github.com/aynumosir/ainu-mcp-go/cache/inmemory"
	"github.com/aynumosir/ainu-mcp-go/cache/redis"
	"github.com/aynumosir/ainu-mcp-go/cache/sqlite"
	"github.com/aynumosir/ainu-mcp-go/config"
	"github.com/aynumosir/ainu-mcp-go/gateway"
	"github.com/aynumosir/ainu-mcp-go/gateway/huggingface"
	"github.com/aynumosir/ainu-mcp-go/gateway/ollama"
	"github.com/aynumosir/ainu-mcp-go/gateway/openai"
)

// backendOverride carries an injected backend through the container.
type backendOverride struct {
	gateway.Gateway
}

// newGateway builds the backend and wraps it, innermost first, in retry,
// timeout, concurrency limit and cache.
func newGateway(cfg *config.Config, override backendOverride) (gateway.Gateway, error) {
	g := override.Gateway
	if g == nil {
		var err error
		if g, err = newBackend(cfg.Gateway); err != nil {
			return nil, err
		}
	}

	g = gateway.WithRetry(g, cfg.Gateway.Retry)
	g = gateway.WithTimeout(g, cfg.Gateway.Timeout)
	if cfg.Gateway.MaxConcurrency > 0 {
		limited, err := gateway.WithLimit(g, cfg.Gateway.MaxConcurrency)
		if err != nil {
			_ = gateway.Close(g)
			return nil, err
		}
		g = limited
	}

	c, err := newCache(cfg.Cache)
	if err != nil {
		_ = gateway.Close(g)
		return nil, err
	}
	return gateway.WithCache(g, c, cfg.Gateway.Backend+"/"+cfg.Gateway.Model), nil
}

func newBackend(cfg config.GatewayConfig) (gateway.Gateway, error) {
	switch cfg.Backend {
	case config.BackendHuggingFace:
		var opts []huggingface.Option
		if cfg.APIKey != "" {
			opts = append(opts, huggingface.WithAPIKey(cfg.APIKey))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, huggingface.WithBaseURL(cfg.BaseURL))
		}
		return huggingface.New(cfg.Model, opts...)
	case config.BackendOpenAI:
		var opts []openai.Option
		if cfg.APIKey != "" {
			opts = append(opts, openai.WithAPIKey(cfg.APIKey))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		return openai.New(cfg.Model, opts...)
	case config.BackendOllama:
		var opts []ollama.Option
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithHost(cfg.BaseURL))
		}
		return ollama.New(cfg.Model, opts...)
	default:
		return nil, fmt.Errorf("unknown gateway backend %q", cfg.Backend)
	}
}

// newCache returns nil when caching is off.
func newCache(cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", config.CacheNone:
		return nil, nil
	case config.CacheInMemory:
		return inmemory.New(inmemory.WithSize(cfg.Size), inmemory.WithTTL(cfg.TTL)), nil
	case config.CacheRedis:
		c, err := redis.New(redis.WithURL(cfg.RedisURL), redis.WithTTL(cfg.TTL))
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	case config.CacheSQLite:
		c, err := sqlite.New(cfg.SQLitePath, sqlite.WithTTL(cfg.TTL))
		if err != nil {
			return nil, fmt.Errorf("sqlite cache: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
