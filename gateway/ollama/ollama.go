//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package ollama provides a gateway backed by a local Ollama server.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/aynumosir/ainu-mcp-go/gateway"
	"github.com/aynumosir/ainu-mcp-go/log"
)

var (
	_ gateway.Gateway = (*Gateway)(nil)
	_ gateway.Prober  = (*Gateway)(nil)
)

// Gateway runs non-streaming generate requests against Ollama.
type Gateway struct {
	model  string
	client *api.Client
}

type options struct {
	host       string
	httpClient *http.Client
}

// Option configures a Gateway.
type Option func(*options)

// WithHost sets the Ollama server URL. Without it OLLAMA_HOST is used.
func WithHost(host string) Option {
	return func(o *options) { o.host = host }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// New creates a gateway for the named model.
func New(model string, opts ...Option) (*Gateway, error) {
	if model == "" {
		return nil, errors.New("ollama: model name cannot be empty")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.host == "" {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("ollama: client from environment: %w", err)
		}
		return &Gateway{model: model, client: client}, nil
	}

	if !strings.Contains(o.host, "://") {
		o.host = "http://" + o.host
	}
	base, err := url.Parse(o.host)
	if err != nil {
		return nil, fmt.Errorf("ollama: parse host: %w", err)
	}
	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Gateway{model: model, client: api.NewClient(base, httpClient)}, nil
}

// Translate implements gateway.Gateway.
func (g *Gateway) Translate(ctx context.Context, prompt string, opts gateway.Options) ([]gateway.Generation, error) {
	stream := false
	modelOpts := map[string]any{}
	if opts.MaxLength > 0 {
		modelOpts["num_predict"] = opts.MaxLength
	}
	if !opts.DoSample {
		modelOpts["temperature"] = 0
	}
	req := &api.GenerateRequest{
		Model:   g.model,
		Prompt:  prompt,
		Stream:  &stream,
		Options: modelOpts,
	}

	var sb strings.Builder
	err := g.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return nil, convertError(err)
	}
	log.Debugf("ollama gateway %s generated %d bytes", g.model, sb.Len())
	return []gateway.Generation{{GeneratedText: sb.String()}}, nil
}

// Probe checks that the model is available on the server.
func (g *Gateway) Probe(ctx context.Context) error {
	if _, err := g.client.Show(ctx, &api.ShowRequest{Model: g.model}); err != nil {
		return fmt.Errorf("ollama probe %s: %w", g.model, convertError(err))
	}
	return nil
}

func convertError(err error) error {
	var st api.StatusError
	if errors.As(err, &st) {
		return &gateway.StatusError{StatusCode: st.StatusCode, Message: st.ErrorMessage}
	}
	return err
}
