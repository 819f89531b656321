//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package gateway defines the translation engine boundary. A Gateway turns a
// prompt string into one or more generations; backends live in
// subpackages and decorators in this package add retry, concurrency
// limits, timeouts and caching.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/aynumosir/ainu-mcp-go/protocol"
)

// Options controls decoding for a single call.
type Options struct {
	// MaxLength bounds the generated sequence length.
	MaxLength int `json:"max_length"`
	// DoSample enables sampling. False means greedy decoding.
	DoSample bool `json:"do_sample"`
}

// DefaultOptions are the options used for every translation call.
var DefaultOptions = Options{MaxLength: 512, DoSample: false}

// Generation is one generated output.
type Generation struct {
	GeneratedText string `json:"generated_text"`
}

// Gateway translates prompt strings. Implementations must be safe for
// concurrent use.
type Gateway interface {
	Translate(ctx context.Context, prompt string, opts Options) ([]Generation, error)
}

// Prober is implemented by gateways that can check their backend before the
// server starts accepting calls.
type Prober interface {
	Probe(ctx context.Context) error
}

// Closer is implemented by gateways holding resources.
type Closer interface {
	Close() error
}

// Func adapts a function to the Gateway interface.
type Func func(ctx context.Context, prompt string, opts Options) ([]Generation, error)

// Translate calls f.
func (f Func) Translate(ctx context.Context, prompt string, opts Options) ([]Generation, error) {
	return f(ctx, prompt, opts)
}

// ErrNoGeneration is returned when a backend answers with an empty result.
var ErrNoGeneration = errors.New("gateway returned no generation")

// TranslationFailedError wraps any failure of the translation engine.
type TranslationFailedError struct {
	Err error
}

func (e *TranslationFailedError) Error() string {
	return fmt.Sprintf("translation failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TranslationFailedError) Unwrap() error { return e.Err }

// Kind implements protocol.Kinded.
func (e *TranslationFailedError) Kind() protocol.Kind { return protocol.KindTranslationFailed }

// First calls g and returns the text of the first generation. Errors and
// empty results are reported as *TranslationFailedError.
func First(ctx context.Context, g Gateway, prompt string, opts Options) (string, error) {
	gens, err := g.Translate(ctx, prompt, opts)
	if err != nil {
		return "", &TranslationFailedError{Err: err}
	}
	if len(gens) == 0 {
		return "", &TranslationFailedError{Err: ErrNoGeneration}
	}
	return gens[0].GeneratedText, nil
}

// Probe runs g's probe if it has one. Decorators forward to the gateway
// they wrap.
func Probe(ctx context.Context, g Gateway) error {
	if p, ok := g.(Prober); ok {
		return p.Probe(ctx)
	}
	return nil
}

// Close releases g's resources if it holds any.
func Close(g Gateway) error {
	if c, ok := g.(Closer); ok {
		return c.Close()
	}
	return nil
}
