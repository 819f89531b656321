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
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

type callParam struct {
	ctx    context.Context
	g      Gateway
	prompt string
	opts   Options
	done   chan callResult
}

type callResult struct {
	gens     []Generation
	err      error
	panicked any
}

func (p *callParam) reset() {
	p.ctx = nil
	p.g = nil
	p.prompt = ""
	p.opts = Options{}
	p.done = nil
}

var callParamPool = &sync.Pool{
	New: func() any { return new(callParam) },
}

type limitGateway struct {
	Gateway
	pool *ants.PoolWithFunc
}

// WithLimit bounds the number of in-flight calls to g. A size of zero or
// less leaves g unbounded. Callers waiting for a slot give up when their
// context ends. A panic in g is re-raised in the calling goroutine.
func WithLimit(g Gateway, size int) (Gateway, error) {
	if size <= 0 {
		return g, nil
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*callParam)
		if !ok {
			panic("gateway limit pool args type error")
		}
		done := param.done
		var res callResult
		defer func() {
			// A backend panic is handed back to the caller's goroutine.
			if p := recover(); p != nil {
				res = callResult{panicked: p}
			}
			param.reset()
			callParamPool.Put(param)
			done <- res
		}()
		if err := param.ctx.Err(); err != nil {
			res.err = err
			return
		}
		res.gens, res.err = param.g.Translate(param.ctx, param.prompt, param.opts)
	})
	if err != nil {
		return nil, fmt.Errorf("create gateway pool: %w", err)
	}
	return &limitGateway{Gateway: g, pool: pool}, nil
}

func (l *limitGateway) Translate(ctx context.Context, prompt string, opts Options) ([]Generation, error) {
	param := callParamPool.Get().(*callParam)
	param.ctx = ctx
	param.g = l.Gateway
	param.prompt = prompt
	param.opts = opts
	done := make(chan callResult, 1)
	param.done = done

	submitted := make(chan error, 1)
	go func() { submitted <- l.pool.Invoke(param) }()

	select {
	case err := <-submitted:
		if err != nil {
			if errors.Is(err, ants.ErrPoolClosed) {
				return nil, fmt.Errorf("gateway closed: %w", err)
			}
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-done:
		if res.panicked != nil {
			panic(res.panicked)
		}
		return res.gens, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *limitGateway) Probe(ctx context.Context) error { return Probe(ctx, l.Gateway) }

func (l *limitGateway) Close() error {
	l.pool.Release()
	return Close(l.Gateway)
}
