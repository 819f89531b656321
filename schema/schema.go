//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package schema declares typed tool parameters and validates raw call
// arguments against them.
package schema

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Kind is the value kind of a parameter.
type Kind string

const (
	// KindEnum accepts one literal out of a fixed domain.
	KindEnum Kind = "enum"
	// KindString accepts any string, optionally with a minimum length.
	KindString Kind = "string"
)

// ParameterSpec declares one tool parameter.
type ParameterSpec struct {
	Name        string
	Kind        Kind
	Domain      []string
	Default     *string
	Required    bool
	MinLength   int
	Description string
	// MinLengthMessage overrides the message used when MinLength is violated.
	MinLengthMessage string
}

// HasDefault reports whether the spec carries a default value.
func (p ParameterSpec) HasDefault() bool {
	return p.Default != nil
}

// Default returns a pointer to v for use as ParameterSpec.Default.
func Default(v string) *string {
	return &v
}

// Params is a validated parameter set. Every declared parameter is present.
type Params map[string]string

// Get returns the value of the named parameter.
func (p Params) Get(name string) string {
	return p[name]
}

// Raw converts p back into raw call arguments.
func (p Params) Raw() map[string]any {
	raw := make(map[string]any, len(p))
	for k, v := range p {
		raw[k] = v
	}
	return raw
}

// Schema is an ordered, name-unique set of parameter specs.
type Schema struct {
	specs []ParameterSpec
}

// New builds a schema from specs in declaration order.
func New(specs ...ParameterSpec) (*Schema, error) {
	seen := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, errors.New("schema: parameter name is empty")
		}
		if _, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("schema: duplicate parameter %q", s.Name)
		}
		seen[s.Name] = struct{}{}
		switch s.Kind {
		case KindEnum:
			if len(s.Domain) == 0 {
				return nil, fmt.Errorf("schema: enum parameter %q has no domain", s.Name)
			}
			if s.HasDefault() && !slices.Contains(s.Domain, *s.Default) {
				return nil, fmt.Errorf("schema: default %q of %q is outside its domain", *s.Default, s.Name)
			}
		case KindString:
		default:
			return nil, fmt.Errorf("schema: parameter %q has unknown kind %q", s.Name, s.Kind)
		}
	}
	return &Schema{specs: slices.Clone(specs)}, nil
}

// MustNew is like New but panics on error. It is meant for package level
// schema declarations.
func MustNew(specs ...ParameterSpec) *Schema {
	s, err := New(specs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Specs returns a copy of the declared specs in order.
func (s *Schema) Specs() []ParameterSpec {
	return slices.Clone(s.specs)
}

// Lookup returns the spec with the given name.
func (s *Schema) Lookup(name string) (ParameterSpec, bool) {
	for _, spec := range s.specs {
		if spec.Name == name {
			return spec, true
		}
	}
	return ParameterSpec{}, false
}

// Validate checks raw against the schema and returns the normalized
// parameters. Specs are checked in declaration order and the first failure
// is returned. Keys not declared by the schema are ignored.
func (s *Schema) Validate(raw map[string]any) (Params, error) {
	params := make(Params, len(s.specs))
	for _, spec := range s.specs {
		v, present := raw[spec.Name]
		if v == nil {
			present = false
		}
		if !present {
			if spec.HasDefault() {
				params[spec.Name] = *spec.Default
				continue
			}
			if spec.Required {
				return nil, &MissingParameterError{Name: spec.Name}
			}
			continue
		}
		str, ok := v.(string)
		if !ok {
			return nil, &InvalidValueError{Name: spec.Name, Allowed: spec.Domain, Got: v}
		}
		switch spec.Kind {
		case KindEnum:
			if !slices.Contains(spec.Domain, str) {
				return nil, &InvalidValueError{Name: spec.Name, Allowed: spec.Domain, Got: str}
			}
		case KindString:
			if utf8.RuneCountInString(str) < spec.MinLength {
				return nil, &EmptyValueError{Name: spec.Name, Message: spec.MinLengthMessage}
			}
			str = norm.NFC.String(str)
		}
		params[spec.Name] = str
	}
	return params, nil
}
