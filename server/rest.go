//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aynumosir/ainu-mcp-go/log"
	"github.com/aynumosir/ainu-mcp-go/protocol"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"

	maxBodyBytes = 1 << 20
)

// badBodyError reports a REST request body that is not a JSON object.
type badBodyError struct {
	err error
}

func (e *badBodyError) Error() string {
	return fmt.Sprintf("request body must be a JSON object: %v", e.err)
}

func (e *badBodyError) Unwrap() error { return e.err }

// Kind implements protocol.Kinded.
func (e *badBodyError) Kind() protocol.Kind { return protocol.KindInvalidValue }

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"inputSchema"`
}

type promptInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	var out []toolInfo
	for _, tool := range s.mcpTools() {
		out = append(out, toolInfo{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": out})
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	defer r.Body.Close()

	var args map[string]any
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err == nil && len(body) > 0 {
		err = json.Unmarshal(body, &args)
	}
	if err != nil {
		log.Warnf("tool %s: bad request body: %v", name, err)
		env := protocol.Failure(&badBodyError{err: err})
		writeJSON(w, statusFor(env), env)
		return
	}

	env := s.registry.Dispatch(r.Context(), name, args)
	writeJSON(w, statusFor(env), env)
}

func (s *Server) handleListPrompts(w http.ResponseWriter, _ *http.Request) {
	var out []promptInfo
	for _, p := range s.prompts.List() {
		out = append(out, promptInfo{Name: p.Name, Description: p.Description})
	}
	writeJSON(w, http.StatusOK, map[string]any{"prompts": out})
}

func (s *Server) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	res, err := s.prompts.Get(mux.Vars(r)["name"])
	if err != nil {
		env := protocol.Failure(err)
		writeJSON(w, statusFor(env), env)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// statusFor maps an envelope to the HTTP status of the REST reply.
func statusFor(env *protocol.Envelope) int {
	if !env.IsError {
		return http.StatusOK
	}
	switch kind := env.Error.Kind; {
	case kind == protocol.KindUnknownTool, kind == protocol.KindUnknownPrompt:
		return http.StatusNotFound
	case kind.IsValidation():
		return http.StatusBadRequest
	case kind == protocol.KindTranslationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("server: failed to encode response: %v", err)
	}
}
