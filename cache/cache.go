//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package cache defines the translation cache interface. Implementations
// live in the inmemory, redis and sqlite subpackages.
package cache

import "context"

// Cache stores translated text by key.
type Cache interface {
	// Get returns the value for key. ok is false on a miss.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
	// Close releases the cache's resources.
	Close() error
}
