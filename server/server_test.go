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
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mcp "trpc.group/trpc-go/trpc-mcp-go"

	"github.com/aynumosir/ainu-mcp-go/gateway"
	"github.com/aynumosir/ainu-mcp-go/prompt"
	"github.com/aynumosir/ainu-mcp-go/protocol"
	"github.com/aynumosir/ainu-mcp-go/registry"
	"github.com/aynumosir/ainu-mcp-go/translate"
)

func newTestServer(t *testing.T, g gateway.Gateway) *Server {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.Register(translate.NewTool(g)))
	return New(reg, prompt.Default())
}

func okGateway() gateway.Gateway {
	return gateway.Func(func(context.Context, string, gateway.Options) ([]gateway.Generation, error) {
		return []gateway.Generation{{GeneratedText: "iyairaikere"}}, nil
	})
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	rec, out := do(t, newTestServer(t, okGateway()), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, contentTypeJSON, rec.Header().Get(headerContentType))
}

func TestListTools(t *testing.T) {
	rec, out := do(t, newTestServer(t, okGateway()), http.MethodGet, "/v1/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)
	tools, ok := out["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	tool := tools[0].(map[string]any)
	assert.Equal(t, translate.ToolName, tool["name"])
	assert.Equal(t, translate.ToolDescription, tool["description"])
	assert.NotNil(t, tool["inputSchema"])
}

func TestCallToolREST(t *testing.T) {
	tests := []struct {
		name     string
		gateway  gateway.Gateway
		path     string
		body     string
		wantCode int
		wantKind protocol.Kind
		wantText string
	}{
		{
			name:     "success",
			gateway:  okGateway(),
			path:     "/v1/tools/ainu_translate",
			body:     `{"source":"Japanese","target":"Ainu","text":"ありがとう"}`,
			wantCode: http.StatusOK,
			wantText: "iyairaikere",
		},
		{
			name:     "unknown tool",
			gateway:  okGateway(),
			path:     "/v1/tools/unknown_tool",
			body:     `{}`,
			wantCode: http.StatusNotFound,
			wantKind: protocol.KindUnknownTool,
		},
		{
			name:     "missing parameter",
			gateway:  okGateway(),
			path:     "/v1/tools/ainu_translate",
			body:     `{"source":"Japanese","target":"Ainu"}`,
			wantCode: http.StatusBadRequest,
			wantKind: protocol.KindMissingParameter,
		},
		{
			name:     "empty body",
			gateway:  okGateway(),
			path:     "/v1/tools/ainu_translate",
			body:     ``,
			wantCode: http.StatusBadRequest,
			wantKind: protocol.KindMissingParameter,
		},
		{
			name:     "malformed body",
			gateway:  okGateway(),
			path:     "/v1/tools/ainu_translate",
			body:     `[1,2`,
			wantCode: http.StatusBadRequest,
			wantKind: protocol.KindInvalidValue,
		},
		{
			name: "gateway failure",
			gateway: gateway.Func(func(context.Context, string, gateway.Options) ([]gateway.Generation, error) {
				return nil, errors.New("service unavailable")
			}),
			path:     "/v1/tools/ainu_translate",
			body:     `{"source":"Ainu","target":"Japanese","text":"iyairaikere"}`,
			wantCode: http.StatusBadGateway,
			wantKind: protocol.KindTranslationFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := do(t, newTestServer(t, tt.gateway), http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantKind == "" {
				assert.Nil(t, out["isError"])
				content := out["content"].([]any)
				require.Len(t, content, 1)
				item := content[0].(map[string]any)
				assert.Equal(t, "text", item["type"])
				assert.Equal(t, tt.wantText, item["text"])
				return
			}
			assert.Equal(t, true, out["isError"])
			errObj := out["error"].(map[string]any)
			assert.Equal(t, string(tt.wantKind), errObj["kind"])
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, okGateway()).Handler()
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/tools/ainu_translate"},
		{http.MethodPost, "/v1/tools"},
		{http.MethodPost, "/v1/prompts/ainu_conversation"},
		{http.MethodPut, "/healthz"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestPromptsREST(t *testing.T) {
	s := newTestServer(t, okGateway())

	rec, out := do(t, s, http.MethodGet, "/v1/prompts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	prompts := out["prompts"].([]any)
	require.Len(t, prompts, 1)
	assert.Equal(t, prompt.ConversationName, prompts[0].(map[string]any)["name"])

	rec, out = do(t, s, http.MethodGet, "/v1/prompts/ainu_conversation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	messages := out["messages"].([]any)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	text := msg["content"].(map[string]any)["text"].(string)
	assert.True(t, strings.HasPrefix(text, "あなたは、アイヌ語が理解できませんが"))

	rec, out = do(t, s, http.MethodGet, "/v1/prompts/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(protocol.KindUnknownPrompt), out["error"].(map[string]any)["kind"])
}

func TestCallToolMCP(t *testing.T) {
	s := newTestServer(t, okGateway())

	req := &mcp.CallToolRequest{}
	req.Params.Name = translate.ToolName
	req.Params.Arguments = map[string]any{"source": "Japanese", "target": "Ainu", "text": "ありがとう"}
	res, err := s.callTool(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "iyairaikere", text.Text)

	req.Params.Name = "unknown_tool"
	res, err = s.callTool(context.Background(), req)
	require.NoError(t, err, "failures stay inside the result")
	assert.True(t, res.IsError)
}

func TestGetPromptMCP(t *testing.T) {
	s := newTestServer(t, okGateway())

	req := &mcp.GetPromptRequest{}
	req.Params.Name = prompt.ConversationName
	res, err := s.getPrompt(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, mcp.RoleUser, res.Messages[0].Role)

	req.Params.Name = "nope"
	_, err = s.getPrompt(context.Background(), req)
	assert.Equal(t, protocol.KindUnknownPrompt, protocol.KindOf(err))
}

func TestNewFreezesRegistry(t *testing.T) {
	reg := registry.New()
	New(reg, prompt.Default())
	assert.ErrorIs(t, reg.Register(translate.NewTool(okGateway())), registry.ErrFrozen)
}

func TestServeHTTPShutdown(t *testing.T) {
	s := newTestServer(t, okGateway())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeHTTP(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ServeHTTP did not return after cancel")
	}
}

func TestServeUnknownTransport(t *testing.T) {
	err := newTestServer(t, okGateway()).Serve(context.Background(), "carrier-pigeon", "")
	assert.Error(t, err)
}
