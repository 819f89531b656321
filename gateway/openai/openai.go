//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package openai provides a gateway backed by any OpenAI compatible chat
// completion endpoint, for deployments that serve the translation model
// behind an OpenAI style API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/aynumosir/ainu-mcp-go/gateway"
	"github.com/aynumosir/ainu-mcp-go/log"
)

const (
	// defaultAPIKeyEnvVar is read when no API key is given.
	defaultAPIKeyEnvVar = "OPENAI_API_KEY"
	// defaultBaseURLEnvVar is read when no base URL is given.
	defaultBaseURLEnvVar = "OPENAI_BASE_URL"
)

var (
	_ gateway.Gateway = (*Gateway)(nil)
	_ gateway.Prober  = (*Gateway)(nil)
)

// Gateway sends each prompt as a single user message.
type Gateway struct {
	name   string
	client openai.Client
}

type options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Option configures a Gateway.
type Option func(*options)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(o *options) { o.APIKey = key }
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(o *options) { o.BaseURL = url }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.HTTPClient = client }
}

// New creates a gateway for the named model.
func New(name string, opts ...Option) (*Gateway, error) {
	if name == "" {
		return nil, errors.New("openai: model name cannot be empty")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.APIKey == "" {
		o.APIKey = os.Getenv(defaultAPIKeyEnvVar)
	}
	if o.BaseURL == "" {
		o.BaseURL = os.Getenv(defaultBaseURLEnvVar)
	}

	// Retries are handled by gateway.WithRetry.
	clientOpts := []openaiopt.RequestOption{openaiopt.WithMaxRetries(0)}
	if o.APIKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		if !strings.HasSuffix(o.BaseURL, "/") {
			o.BaseURL += "/"
		}
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.BaseURL))
	}
	if o.HTTPClient != nil {
		clientOpts = append(clientOpts, openaiopt.WithHTTPClient(o.HTTPClient))
	}
	return &Gateway{name: name, client: openai.NewClient(clientOpts...)}, nil
}

// Translate implements gateway.Gateway.
func (g *Gateway) Translate(ctx context.Context, prompt string, opts gateway.Options) ([]gateway.Generation, error) {
	chatRequest := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.name),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if opts.MaxLength > 0 {
		chatRequest.MaxTokens = openai.Int(int64(opts.MaxLength))
	}
	if !opts.DoSample {
		chatRequest.Temperature = openai.Float(0)
	}

	completion, err := g.client.Chat.Completions.New(ctx, chatRequest)
	if err != nil {
		return nil, convertError(err)
	}
	gens := make([]gateway.Generation, 0, len(completion.Choices))
	for _, choice := range completion.Choices {
		gens = append(gens, gateway.Generation{GeneratedText: choice.Message.Content})
	}
	log.Debugf("openai gateway %s returned %d choices", g.name, len(gens))
	return gens, nil
}

// Probe checks that the model is known to the endpoint.
func (g *Gateway) Probe(ctx context.Context) error {
	if _, err := g.client.Models.Get(ctx, g.name); err != nil {
		return fmt.Errorf("openai probe %s: %w", g.name, convertError(err))
	}
	return nil
}

func convertError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &gateway.StatusError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	}
	return err
}
