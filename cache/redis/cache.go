//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package redis provides a redis backed translation cache.
// Storage structure:
//
//	prefix + key -> string(translated text), optionally with TTL.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aynumosir/ainu-mcp-go/cache"
)

const (
	// defaultConnectionTimeout is the default timeout for the connection test.
	defaultConnectionTimeout = 5 * time.Second
	// DefaultPrefix namespaces keys written by this cache.
	DefaultPrefix = "ainu_mcp:translation:"
)

var _ cache.Cache = (*Cache)(nil)

// Cache is the redis translation cache.
type Cache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	owned  bool
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	url    string
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// WithURL connects using a redis URL such as redis://localhost:6379/0.
func WithURL(url string) Option {
	return func(o *options) { o.url = url }
}

// WithClient uses an existing client. The cache will not close it.
func WithClient(client redis.UniversalClient) Option {
	return func(o *options) { o.client = client }
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithTTL sets the expiry of written entries. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// New creates a redis cache and checks the connection.
func New(opts ...Option) (*Cache, error) {
	o := options{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	client, owned := o.client, false
	if client == nil {
		if o.url == "" {
			return nil, errors.New("redis cache: url or client is required")
		}
		ropts, err := redis.ParseURL(o.url)
		if err != nil {
			return nil, fmt.Errorf("redis cache: parse url: %w", err)
		}
		client, owned = redis.NewClient(ropts), true
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectionTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if owned {
			_ = client.Close()
		}
		return nil, fmt.Errorf("redis connection test failed: %w", err)
	}
	return &Cache{client: client, prefix: o.prefix, ttl: o.ttl, owned: owned}, nil
}

// Get implements cache.Cache.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis cache get: %w", err)
	}
	return v, true, nil
}

// Set implements cache.Cache.
func (c *Cache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis cache set: %w", err)
	}
	return nil
}

// Close implements cache.Cache.
func (c *Cache) Close() error {
	if !c.owned {
		return nil
	}
	return c.client.Close()
}
