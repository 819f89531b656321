//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package translate implements the ainu_translate tool: its parameter
// schema, the prompt templates understood by the translation model, and
// the handler that ties them to a gateway.
package translate

import (
	"fmt"

	"github.com/aynumosir/ainu-mcp-go/schema"
)

// Language is a translation endpoint.
type Language string

// Supported languages.
const (
	Japanese Language = "Japanese"
	Ainu     Language = "Ainu"
)

// Languages lists the supported languages.
var Languages = []string{string(Japanese), string(Ainu)}

// Dialect is a regional variety of Ainu.
type Dialect string

// DefaultDialect is used when no dialect is given.
const DefaultDialect Dialect = "沙流"

// Dialects lists the supported dialects.
var Dialects = []string{"沙流", "千歳", "幌別", "静内", "様似", "十勝", "釧路", "美幌", "石狩"}

// Pronoun selects the first person form used in Ainu output.
type Pronoun string

// Pronoun modes.
const (
	// PronounFirst is the ordinary conversational register.
	PronounFirst Pronoun = "first"
	// PronounFourth is the storytelling register.
	PronounFourth Pronoun = "fourth"
)

// Pronouns lists the supported pronoun modes.
var Pronouns = []string{string(PronounFirst), string(PronounFourth)}

// Parameter names of the tool.
const (
	ParamSource  = "source"
	ParamTarget  = "target"
	ParamDialect = "dialect"
	ParamPronoun = "pronoun"
	ParamText    = "text"
)

const pronounDescription = "Preferred pronoun to use in the translation. In Ainu, the first person pronoun " +
	"is used for ordinary conversation, while the fourth person pronoun is used for " +
	"storytelling. Use `first` if not sure."

// Schema is the parameter schema of ainu_translate.
var Schema = schema.MustNew(
	schema.ParameterSpec{
		Name:        ParamSource,
		Kind:        schema.KindEnum,
		Domain:      Languages,
		Required:    true,
		Description: "Language to translate from.",
	},
	schema.ParameterSpec{
		Name:        ParamTarget,
		Kind:        schema.KindEnum,
		Domain:      Languages,
		Required:    true,
		Description: "Language to translate to.",
	},
	schema.ParameterSpec{
		Name:        ParamDialect,
		Kind:        schema.KindEnum,
		Domain:      Dialects,
		Default:     schema.Default(string(DefaultDialect)),
		Description: "Dialect of Ainu to use in the translation.",
	},
	schema.ParameterSpec{
		Name:        ParamPronoun,
		Kind:        schema.KindEnum,
		Domain:      Pronouns,
		Default:     schema.Default(string(PronounFirst)),
		Description: pronounDescription,
	},
	schema.ParameterSpec{
		Name:             ParamText,
		Kind:             schema.KindString,
		Required:         true,
		MinLength:        1,
		Description:      "Text to translate.",
		MinLengthMessage: "Text must not be empty.",
	},
)

// Request is a validated translation request.
type Request struct {
	Source  Language
	Target  Language
	Dialect Dialect
	Pronoun Pronoun
	Text    string
}

// RequestFromParams builds a Request from parameters validated by Schema.
func RequestFromParams(params schema.Params) Request {
	return Request{
		Source:  Language(params.Get(ParamSource)),
		Target:  Language(params.Get(ParamTarget)),
		Dialect: Dialect(params.Get(ParamDialect)),
		Pronoun: Pronoun(params.Get(ParamPronoun)),
		Text:    params.Get(ParamText),
	}
}

// BuildPrompt renders req in the template the translation model was
// trained on. Only Japanese to Ainu gets its own template; every other
// combination, source equal to target included, uses the Ainu to Japanese
// template.
func BuildPrompt(req Request) string {
	if req.Source == Japanese && req.Target == Ainu {
		return fmt.Sprintf("translate Japanese to Ainu (%s, %s): %s", req.Dialect, req.Pronoun, req.Text)
	}
	return fmt.Sprintf("translate Ainu (%s, %s) to Japanese: %s", req.Dialect, req.Pronoun, req.Text)
}
