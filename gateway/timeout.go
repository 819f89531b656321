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
	"time"
)

type timeoutGateway struct {
	Gateway
	timeout time.Duration
}

// WithTimeout bounds every call to g by d. A zero d leaves g unchanged.
func WithTimeout(g Gateway, d time.Duration) Gateway {
	if d <= 0 {
		return g
	}
	return &timeoutGateway{Gateway: g, timeout: d}
}

func (t *timeoutGateway) Translate(ctx context.Context, prompt string, opts Options) ([]Generation, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Gateway.Translate(ctx, prompt, opts)
}

func (t *timeoutGateway) Probe(ctx context.Context) error { return Probe(ctx, t.Gateway) }

func (t *timeoutGateway) Close() error { return Close(t.Gateway) }
