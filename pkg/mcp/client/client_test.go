// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teradata-labs/tdq/pkg/mcp/protocol"
)

// rpcRequest mirrors the wire envelope for test-side decoding.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

func decodeRequest(t *testing.T, r *http.Request) rpcRequest {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var req rpcRequest
	require.NoError(t, json.Unmarshal(body, &req))
	return req
}

func writeResult(w http.ResponseWriter, id string, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	})
}

func writeRPCError(w http.ResponseWriter, id string, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error":   map[string]any{"code": code, "message": message},
	})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := New(Config{Endpoint: server.URL})
	require.NoError(t, err)
	return c
}

func TestInitializeHandshake(t *testing.T) {
	var initReq, notifyReq rpcRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		switch req.Method {
		case "initialize":
			initReq = req
			writeResult(w, req.ID, map[string]any{
				"protocolVersion": protocol.ProtocolVersion,
				"serverInfo":      map[string]any{"name": "teradata-mcp", "version": "1.0"},
			})
		case "initialized":
			notifyReq = req
			writeResult(w, req.ID, map[string]any{})
		default:
			writeRPCError(w, req.ID, protocol.MethodNotFound, "unknown method")
		}
	})

	resp, err := c.Initialize(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp.Result())

	var params protocol.InitializeParams
	require.NoError(t, json.Unmarshal(initReq.Params, &params))
	assert.Equal(t, protocol.ProtocolVersion, params.ProtocolVersion)
	assert.NotNil(t, params.Capabilities.Tools)
	assert.NotNil(t, params.Capabilities.Resources)
	assert.NotNil(t, params.Capabilities.Prompts)
	assert.Equal(t, "dq-orchestrator", params.ClientInfo.Name)
	assert.Equal(t, "0.1.0", params.ClientInfo.Version)

	require.NoError(t, c.NotifyInitialized(context.Background()))
	assert.Equal(t, "0", notifyReq.ID)
	assert.Equal(t, "initialized", notifyReq.Method)
	assert.JSONEq(t, `{"clientCapabilities": {}}`, string(notifyReq.Params))
}

func TestListTools(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		require.Equal(t, "tools/list", req.Method)
		writeResult(w, req.ID, map[string]any{
			"tools": []any{
				map[string]any{
					"name":        "base_tableList",
					"description": "List tables",
					"inputSchema": map[string]any{"type": "object"},
				},
				"not a tool entry",
				map[string]any{"name": "qlty_missingValues"},
			},
		})
	})

	tools := c.ListTools(context.Background())
	require.Len(t, tools, 2)
	assert.Equal(t, "base_tableList", tools[0].Name)
	assert.Equal(t, "List tables", tools[0].Description)
	assert.Equal(t, "qlty_missingValues", tools[1].Name)
}

func TestListToolsDegradesToEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.Empty(t, c.ListTools(context.Background()))
}

// The server rejects the snake_name spellings with invalid params and only
// accepts the generic ones; negotiation must land on the generic alias on
// its first variant attempt, two wire calls in total.
func TestCallToolNegotiation(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		require.Equal(t, "tools/call", req.Method)
		attempts++

		var params protocol.CallToolParams
		require.NoError(t, json.Unmarshal(req.Params, &params))
		require.Equal(t, "base_tableList", params.Name)

		if _, ok := params.Arguments["database"]; ok {
			writeResult(w, req.ID, map[string]any{
				"content": []any{"SALES.orders", "SALES.customers"},
			})
			return
		}
		writeRPCError(w, req.ID, protocol.InvalidParams, "Invalid params")
	})

	args := NewArguments().Set("database_name", "SALES")
	resp, err := c.CallTool(context.Background(), "tableList", args)
	require.NoError(t, err)

	assert.Equal(t, 2, attempts)
	assert.Nil(t, resp.Err())
	assert.Equal(t, "base_tableList", resp.Tool())
	assert.Equal(t, map[string]any{"database": "SALES"}, resp.Args())
}

func TestCallToolDirectSuccess(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		attempts++
		writeResult(w, req.ID, map[string]any{"content": map[string]any{"ok": true}})
	})

	args := NewArguments().Set("table_name", "orders")
	resp, err := c.CallTool(context.Background(), "base_tablePreview", args)
	require.NoError(t, err)

	assert.Equal(t, 1, attempts)
	assert.Equal(t, "base_tablePreview", resp.Tool())
	assert.Equal(t, map[string]any{"table_name": "orders"}, resp.Args())
}

func TestCallToolMemoization(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		attempts++
		writeRPCError(w, req.ID, protocol.InvalidParams, "Invalid params")
	})

	// foo_bar has no generic alias; the only distinct variant is fooBar.
	args := NewArguments().Set("foo_bar", "x")
	resp, err := c.CallTool(context.Background(), "someTool", args)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.True(t, resp.IsInvalidParams())

	// Same key set, different value: suppressed without wire traffic.
	again := NewArguments().Set("foo_bar", "other")
	resp, err = c.CallTool(context.Background(), "someTool", again)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.True(t, resp.IsInvalidParams())
	assert.Equal(t, "suppressed cached invalid params", resp.Err().Message)
	assert.Equal(t, "someTool", resp.Tool())
}

// When every variant fails, the returned body and the _args annotation must
// describe the same attempt: the last one actually sent.
func TestCallToolExhaustionAnnotatesLastAttempt(t *testing.T) {
	var lastWireArgs map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		var params protocol.CallToolParams
		require.NoError(t, json.Unmarshal(req.Params, &params))
		lastWireArgs = params.Arguments
		writeRPCError(w, req.ID, protocol.InvalidParams, "Invalid params")
	})

	// Attempt order: {database} alias, then {databaseName}; the original
	// spelling repeats the direct attempt and is skipped.
	args := NewArguments().Set("database_name", "SALES")
	resp, err := c.CallTool(context.Background(), "base_tableList", args)
	require.NoError(t, err)

	assert.True(t, resp.IsInvalidParams())
	assert.Equal(t, map[string]any{"databaseName": "SALES"}, resp.Args())
	assert.Equal(t, map[string]any{"databaseName": "SALES"}, lastWireArgs)
}

func TestCallToolTransportErrorsNotMemoized(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeResult(w, req.ID, map[string]any{"content": map[string]any{}})
	})

	args := NewArguments().Set("table_name", "orders")
	_, err := c.CallTool(context.Background(), "base_tableDDL", args)
	require.Error(t, err)

	resp, err := c.CallTool(context.Background(), "base_tableDDL", args)
	require.NoError(t, err)
	assert.Nil(t, resp.Err())
	assert.Equal(t, 2, attempts)
}

func TestCallToolOtherErrorsNotRetried(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		attempts++
		writeRPCError(w, req.ID, protocol.ServerError, "database unreachable")
	})

	args := NewArguments().Set("table_name", "orders")
	resp, err := c.CallTool(context.Background(), "base_tableDDL", args)
	require.NoError(t, err)

	assert.Equal(t, 1, attempts)
	require.NotNil(t, resp.Err())
	assert.Equal(t, protocol.ServerError, resp.Err().Code)

	// Non-invalid-params failures are never cached.
	_, err = c.CallTool(context.Background(), "base_tableDDL", args)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestCallWithIDMarshalError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, "1", map[string]any{})
	})
	_, err := c.Call(context.Background(), "anything", map[string]any{"bad": func() {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal")
}
