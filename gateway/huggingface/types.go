//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package huggingface

import "encoding/json"

// GenerationRequest is the body of a text2text-generation call.
type GenerationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters GenerationParameters `json:"parameters"`
	Options    RequestOptions       `json:"options"`
}

// GenerationParameters are the decoding parameters.
type GenerationParameters struct {
	MaxLength int  `json:"max_length"`
	DoSample  bool `json:"do_sample"`
}

// RequestOptions are the inference API options.
type RequestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// GenerationResponse is one item of the response array.
type GenerationResponse struct {
	GeneratedText string `json:"generated_text"`
}

// ErrorResponse is the error body returned by the inference API. The error
// field is either a plain string or an object with a message.
type ErrorResponse struct {
	Error         json.RawMessage `json:"error"`
	EstimatedTime float64         `json:"estimated_time,omitempty"`
}

// Message extracts a readable message from the error field.
func (e ErrorResponse) Message() string {
	var s string
	if err := json.Unmarshal(e.Error, &s); err == nil {
		return s
	}
	var detail struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Error, &detail); err == nil {
		return detail.Message
	}
	return string(e.Error)
}
