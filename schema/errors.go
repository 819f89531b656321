//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package schema

import (
	"fmt"
	"strings"

	"github.com/aynumosir/ainu-mcp-go/protocol"
)

// MissingParameterError reports a required parameter that was not supplied.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameter %q is required", e.Name)
}

// Kind implements protocol.Kinded.
func (e *MissingParameterError) Kind() protocol.Kind { return protocol.KindMissingParameter }

// InvalidValueError reports a value of the wrong type or outside the
// parameter's domain.
type InvalidValueError struct {
	Name    string
	Allowed []string
	Got     any
}

func (e *InvalidValueError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("parameter %q must be a string, got %T", e.Name, e.Got)
	}
	return fmt.Sprintf("parameter %q must be one of [%s], got %v",
		e.Name, strings.Join(e.Allowed, ", "), e.Got)
}

// Kind implements protocol.Kinded.
func (e *InvalidValueError) Kind() protocol.Kind { return protocol.KindInvalidValue }

// EmptyValueError reports a string shorter than its minimum length.
type EmptyValueError struct {
	Name    string
	Message string
}

func (e *EmptyValueError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("parameter %q: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("parameter %q must not be empty", e.Name)
}

// Kind implements protocol.Kinded.
func (e *EmptyValueError) Kind() protocol.Kind { return protocol.KindEmptyValue }
