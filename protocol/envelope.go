//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package protocol defines the reply envelope returned for every tool call
// and the error kinds a call can fail with.
package protocol

import (
	"errors"
	"fmt"

	mcp "trpc.group/trpc-go/trpc-mcp-go"
)

// Kind classifies a failed call.
type Kind string

// Error kinds surfaced to callers.
const (
	KindMissingParameter  Kind = "MissingParameter"
	KindInvalidValue      Kind = "InvalidValue"
	KindEmptyValue        Kind = "EmptyValue"
	KindUnknownTool       Kind = "UnknownTool"
	KindUnknownPrompt     Kind = "UnknownPrompt"
	KindTranslationFailed Kind = "TranslationFailed"
	KindInternal          Kind = "Internal"
)

// ContentTypeText is the only content type produced by this server.
const ContentTypeText = "text"

// Kinded is implemented by errors that carry their own Kind.
type Kinded interface {
	Kind() Kind
}

// KindOf returns the kind of the first error in err's chain that carries
// one, or KindInternal.
func KindOf(err error) Kind {
	var k Kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}

// IsValidation reports whether k is one of the schema validation kinds.
func (k Kind) IsValidation() bool {
	return k == KindMissingParameter || k == KindInvalidValue || k == KindEmptyValue
}

// Content is a single reply item.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Error is the protocol level description of a failed call.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`

	cause error
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the error the envelope was built from.
func (e *Error) Unwrap() error {
	return e.cause
}

// Envelope is the reply shape of a tool call. Exactly one of a successful
// Content list or Error is meaningful; IsError tells which.
type Envelope struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
	Error   *Error    `json:"error,omitempty"`
}

// Text wraps a successful result.
func Text(result string) *Envelope {
	return &Envelope{
		Content: []Content{{Type: ContentTypeText, Text: result}},
	}
}

// Failure wraps err into an error envelope. The error text is repeated as
// text content so clients that only read content still see it.
func Failure(err error) *Envelope {
	if err == nil {
		err = errors.New("unknown failure")
	}
	e := &Error{
		Kind:    KindOf(err),
		Message: err.Error(),
		cause:   err,
	}
	return &Envelope{
		Content: []Content{{Type: ContentTypeText, Text: e.Error()}},
		IsError: true,
		Error:   e,
	}
}

// Text returns the text of the first content item.
func (e *Envelope) Text() string {
	if e == nil || len(e.Content) == 0 {
		return ""
	}
	return e.Content[0].Text
}

// CallToolResult converts the envelope into the MCP reply type.
func (e *Envelope) CallToolResult() *mcp.CallToolResult {
	if e.IsError {
		return mcp.NewErrorResult(e.Error.Error())
	}
	contents := make([]mcp.Content, 0, len(e.Content))
	for _, c := range e.Content {
		contents = append(contents, mcp.NewTextContent(c.Text))
	}
	return &mcp.CallToolResult{Content: contents}
}
