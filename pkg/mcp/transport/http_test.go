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
package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPTransport(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		expectErr bool
	}{
		{
			name:   "valid config",
			config: Config{Endpoint: "http://localhost:8080/mcp"},
		},
		{
			name:      "missing endpoint",
			config:    Config{},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.config)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, tr)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, tr)
			}
		})
	}
}

func TestEndpointTrailingSlash(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{"no slash", "http://localhost:8080/mcp", "http://localhost:8080/mcp/"},
		{"one slash", "http://localhost:8080/mcp/", "http://localhost:8080/mcp/"},
		{"many slashes", "http://localhost:8080/mcp///", "http://localhost:8080/mcp/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(Config{Endpoint: tt.endpoint})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tr.endpoint)
		})
	}
}

func TestPostHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","result":{}}`))
	}))
	defer server.Close()

	tr, err := New(Config{
		Endpoint:    server.URL,
		BearerToken: "secret",
		Headers:     map[string]string{"X-Extra": "yes"},
	})
	require.NoError(t, err)

	_, err = tr.Post(context.Background(), []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json, text/event-stream", got.Get("Accept"))
	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
	assert.Equal(t, "yes", got.Get("X-Extra"))
	assert.Empty(t, got.Get(SessionHeader))
}

func TestSessionAffinity(t *testing.T) {
	var sessionSeen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionSeen = append(sessionSeen, r.Header.Get(SessionHeader))
		w.Header().Set(SessionHeader, "abc123")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","result":{}}`))
	}))
	defer server.Close()

	tr, err := New(Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = tr.Post(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "abc123", tr.SessionID())

	_, err = tr.Post(context.Background(), []byte(`{}`))
	require.NoError(t, err)

	require.Len(t, sessionSeen, 2)
	assert.Empty(t, sessionSeen[0])
	assert.Equal(t, "abc123", sessionSeen[1])
}

func TestSessionExpired(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set(SessionHeader, "abc123")
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","result":{}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	tr, err := New(Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = tr.Post(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, "abc123", tr.SessionID())

	_, err = tr.Post(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, tr.SessionID())
}

func TestPostHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	tr, err := New(Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = tr.Post(context.Background(), []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestPostAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	tr, err := New(Config{Endpoint: server.URL})
	require.NoError(t, err)

	decoded, err := tr.Post(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, decoded)
	assert.NotNil(t, decoded)
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]any
	}{
		{
			name: "plain JSON",
			body: `{"result": {"ok": true}}`,
			want: map[string]any{"result": map[string]any{"ok": true}},
		},
		{
			name: "SSE framed",
			body: "event: message\ndata: {\"result\": {\"ok\": true}}\n\n",
			want: map[string]any{"result": map[string]any{"ok": true}},
		},
		{
			name: "SSE last object wins",
			body: "data: {\"seq\": 1}\n\ndata: {\"seq\": 2}\n\n",
			want: map[string]any{"seq": float64(2)},
		},
		{
			name: "SSE with id field",
			body: "id: 7\nevent: message\ndata: {\"result\": {}}\n\n",
			want: map[string]any{"result": map[string]any{}},
		},
		{
			name: "SSE without trailing blank line",
			body: "event: message\ndata: {\"result\": {\"ok\": true}}\n",
			want: map[string]any{"result": map[string]any{"ok": true}},
		},
		{
			name: "empty body",
			body: "",
			want: map[string]any{},
		},
		{
			name: "garbage body",
			body: "not json at all",
			want: map[string]any{},
		},
		{
			name: "JSON array body",
			body: `[1, 2, 3]`,
			want: map[string]any{},
		},
		{
			name: "data lines with no valid JSON",
			body: "data: oops\n\n",
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeBody([]byte(tt.body)))
		})
	}
}
