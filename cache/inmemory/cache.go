//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides a bounded in-process LRU translation cache.
package inmemory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/aynumosir/ainu-mcp-go/cache"
)

// DefaultSize is the capacity used when none is given.
const DefaultSize = 1024

var _ cache.Cache = (*Cache)(nil)

// Cache is a size bounded LRU with optional TTL.
type Cache struct {
	size int
	ttl  time.Duration
	lru  *expirable.LRU[string, string]
}

// Option configures a Cache.
type Option func(*Cache)

// WithSize sets the maximum number of entries.
func WithSize(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.size = n
		}
	}
}

// WithTTL expires entries d after they are written. Zero keeps them until
// evicted.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// New creates an in-memory cache.
func New(opts ...Option) *Cache {
	c := &Cache{size: DefaultSize}
	for _, opt := range opts {
		opt(c)
	}
	c.lru = expirable.NewLRU[string, string](c.size, nil, c.ttl)
	return c
}

// Get implements cache.Cache.
func (c *Cache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.lru.Get(key)
	return v, ok, nil
}

// Set implements cache.Cache.
func (c *Cache) Set(_ context.Context, key, value string) error {
	c.lru.Add(key, value)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (c *Cache) Len() int { return c.lru.Len() }

// Close implements cache.Cache.
func (c *Cache) Close() error {
	c.lru.Purge()
	return nil
}
