//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/aynumosir/ainu-mcp-go/cache"
	"github.com/aynumosir/ainu-mcp-go/log"
)

type cacheGateway struct {
	Gateway
	cache cache.Cache
	// scope separates entries of different backends or models sharing one
	// cache.
	scope string
}

// WithCache memoizes greedy translations of g in c. Sampled calls bypass
// the cache. Cache errors are logged and never fail a call.
func WithCache(g Gateway, c cache.Cache, scope string) Gateway {
	if c == nil {
		return g
	}
	return &cacheGateway{Gateway: g, cache: c, scope: scope}
}

// CacheKey derives the cache key for a call.
func CacheKey(scope, prompt string, opts Options) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d\x00%s", scope, opts.MaxLength, prompt)))
	return hex.EncodeToString(sum[:])
}

func (c *cacheGateway) Translate(ctx context.Context, prompt string, opts Options) ([]Generation, error) {
	if opts.DoSample {
		return c.Gateway.Translate(ctx, prompt, opts)
	}
	key := CacheKey(c.scope, prompt, opts)
	if text, ok, err := c.cache.Get(ctx, key); err != nil {
		log.Warnf("translation cache get: %v", err)
	} else if ok {
		return []Generation{{GeneratedText: text}}, nil
	}

	gens, err := c.Gateway.Translate(ctx, prompt, opts)
	if err != nil || len(gens) == 0 {
		return gens, err
	}
	if err := c.cache.Set(ctx, key, gens[0].GeneratedText); err != nil {
		log.Warnf("translation cache set: %v", err)
	}
	return gens, nil
}

func (c *cacheGateway) Probe(ctx context.Context) error { return Probe(ctx, c.Gateway) }

func (c *cacheGateway) Close() error {
	cerr := c.cache.Close()
	if err := Close(c.Gateway); err != nil {
		return err
	}
	return cerr
}
