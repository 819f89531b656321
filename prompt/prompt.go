//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package prompt serves the static prompts handed to calling agents.
package prompt

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/aynumosir/ainu-mcp-go/protocol"
)

// ConversationName is the name of the Ainu conversation prompt.
const ConversationName = "ainu_conversation"

// ConversationDescription describes the conversation prompt.
const ConversationDescription = "Instructions for holding a conversation in Ainu with the user, " +
	"using ainu_translate to understand each message and to translate each reply."

//go:embed conversation.txt
var conversationText string

// RoleUser is the only message role used by the prompts.
const RoleUser = "user"

// Message is one prompt message.
type Message struct {
	Role    string           `json:"role"`
	Content protocol.Content `json:"content"`
}

// Result is the reply to a prompt fetch.
type Result struct {
	Description string    `json:"description,omitempty"`
	Messages    []Message `json:"messages"`
}

// Prompt is a named, parameterless prompt.
type Prompt struct {
	Name        string
	Description string
	Text        string
}

// UnknownPromptError reports a fetch of a prompt that does not exist.
type UnknownPromptError struct {
	Name string
}

func (e *UnknownPromptError) Error() string {
	return fmt.Sprintf("unknown prompt %q", e.Name)
}

// Kind implements protocol.Kinded.
func (e *UnknownPromptError) Kind() protocol.Kind { return protocol.KindUnknownPrompt }

// Catalog is a fixed set of prompts.
type Catalog struct {
	prompts []Prompt
}

// NewCatalog returns a catalog holding the given prompts.
func NewCatalog(prompts ...Prompt) *Catalog {
	return &Catalog{prompts: slices.Clone(prompts)}
}

// Default returns the catalog served by the server.
func Default() *Catalog {
	return NewCatalog(Conversation())
}

// Conversation returns the Ainu conversation prompt.
func Conversation() Prompt {
	return Prompt{
		Name:        ConversationName,
		Description: ConversationDescription,
		Text:        conversationText,
	}
}

// List returns the prompts in the catalog.
func (c *Catalog) List() []Prompt {
	return slices.Clone(c.prompts)
}

// Get returns the named prompt as a single user message.
func (c *Catalog) Get(name string) (*Result, error) {
	for _, p := range c.prompts {
		if p.Name == name {
			return &Result{
				Description: p.Description,
				Messages: []Message{{
					Role:    RoleUser,
					Content: protocol.Content{Type: protocol.ContentTypeText, Text: p.Text},
				}},
			}, nil
		}
	}
	return nil, &UnknownPromptError{Name: name}
}
