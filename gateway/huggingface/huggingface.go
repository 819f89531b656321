//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/aynumosir/ainu-mcp-go/gateway"
	"github.com/aynumosir/ainu-mcp-go/log"
)

var (
	_ gateway.Gateway = (*Gateway)(nil)
	_ gateway.Prober  = (*Gateway)(nil)
)

// Gateway calls a text2text-generation model on the HuggingFace inference
// API.
type Gateway struct {
	model        string
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	waitForModel bool
	probeInput   string
	extraHeaders map[string]string
}

// New creates a gateway for the given model. An empty model selects
// DefaultModel.
func New(model string, opts ...Option) (*Gateway, error) {
	if model == "" {
		model = DefaultModel
	}
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.BaseURL == "" {
		return nil, errors.New("huggingface: base url cannot be empty")
	}

	apiKey := options.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(defaultAPIKeyEnvVar)
	}
	if apiKey == "" {
		apiKey = os.Getenv(fallbackAPIKeyEnvVar)
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Gateway{
		model:        model,
		baseURL:      strings.TrimRight(options.BaseURL, "/"),
		apiKey:       apiKey,
		httpClient:   httpClient,
		waitForModel: options.WaitForModel,
		probeInput:   options.ProbeInput,
		extraHeaders: options.ExtraHeaders,
	}, nil
}

// Model returns the model id.
func (g *Gateway) Model() string { return g.model }

// Translate implements gateway.Gateway.
func (g *Gateway) Translate(ctx context.Context, prompt string, opts gateway.Options) ([]gateway.Generation, error) {
	resp, err := g.makeRequest(ctx, &GenerationRequest{
		Inputs: prompt,
		Parameters: GenerationParameters{
			MaxLength: opts.MaxLength,
			DoSample:  opts.DoSample,
		},
		Options: RequestOptions{WaitForModel: g.waitForModel},
	})
	if err != nil {
		return nil, err
	}
	gens := make([]gateway.Generation, 0, len(resp))
	for _, r := range resp {
		gens = append(gens, gateway.Generation{GeneratedText: r.GeneratedText})
	}
	return gens, nil
}

// Probe sends a short warm-up request so that a cold model is loaded
// before the first real call.
func (g *Gateway) Probe(ctx context.Context) error {
	_, err := g.Translate(ctx, g.probeInput, gateway.Options{MaxLength: 16})
	if err != nil {
		return fmt.Errorf("huggingface probe %s: %w", g.model, err)
	}
	return nil
}

// makeRequest performs a non-streaming inference request.
func (g *Gateway) makeRequest(ctx context.Context, hfRequest *GenerationRequest) ([]GenerationResponse, error) {
	requestBody, err := json.Marshal(hfRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", g.baseURL, g.model)
	log.Debugf("making request to %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	g.setHeaders(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Error) == 0 {
			return nil, &gateway.StatusError{StatusCode: resp.StatusCode, Message: string(body)}
		}
		return nil, &gateway.StatusError{StatusCode: resp.StatusCode, Message: errResp.Message()}
	}

	var hfResponse []GenerationResponse
	if err := json.Unmarshal(body, &hfResponse); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return hfResponse, nil
}

// setHeaders sets the HTTP headers for the request.
func (g *Gateway) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))
	}
	for k, v := range g.extraHeaders {
		req.Header.Set(k, v)
	}
}
