//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package huggingface provides a gateway backed by the HuggingFace
// text2text-generation inference API.
package huggingface

import (
	"net/http"
)

const (
	// DefaultBaseURL is the default HuggingFace inference base URL.
	DefaultBaseURL = "https://router.huggingface.co/hf-inference"
	// DefaultModel is the Ainu translation model.
	DefaultModel = "aynumosir/mt5-base-ainu"
	// defaultAPIKeyEnvVar is read when no API key is given.
	defaultAPIKeyEnvVar = "HF_TOKEN"
	// fallbackAPIKeyEnvVar is read when defaultAPIKeyEnvVar is empty.
	fallbackAPIKeyEnvVar = "HUGGINGFACE_API_KEY"
	// defaultProbeInput is the warm-up input sent by Probe.
	defaultProbeInput = "translate Ainu to Japanese: irankarapte"
)

// options contains configuration options for creating a Gateway.
type options struct {
	// API key sent as a bearer token. Optional for public models.
	APIKey string
	// Base URL of the inference API.
	BaseURL string
	// HTTP client for making requests.
	HTTPClient *http.Client
	// WaitForModel asks the API to block while a cold model loads.
	WaitForModel bool
	// ProbeInput is sent by Probe to warm the model up.
	ProbeInput string
	// Extra headers to be added to HTTP requests.
	ExtraHeaders map[string]string
}

var defaultOptions = options{
	BaseURL:      DefaultBaseURL,
	WaitForModel: true,
	ProbeInput:   defaultProbeInput,
}

// Option is a function that configures a Gateway.
type Option func(*options)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.APIKey = key
	}
}

// WithBaseURL sets the base URL of the inference API.
func WithBaseURL(url string) Option {
	return func(o *options) {
		if url != "" {
			o.BaseURL = url
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.HTTPClient = client
	}
}

// WithWaitForModel toggles the wait_for_model request option.
func WithWaitForModel(wait bool) Option {
	return func(o *options) {
		o.WaitForModel = wait
	}
}

// WithProbeInput sets the input sent by Probe.
func WithProbeInput(input string) Option {
	return func(o *options) {
		o.ProbeInput = input
	}
}

// WithExtraHeaders adds headers to every request.
func WithExtraHeaders(headers map[string]string) Option {
	return func(o *options) {
		if o.ExtraHeaders == nil {
			o.ExtraHeaders = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.ExtraHeaders[k] = v
		}
	}
}
