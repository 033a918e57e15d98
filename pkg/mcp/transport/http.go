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
// Package transport implements the JSON-RPC-over-HTTP transport for the
// Teradata MCP server, including session affinity and dual JSON/SSE
// response decoding.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrSessionExpired indicates the server session has expired (HTTP 404).
var ErrSessionExpired = errors.New("session expired")

// DefaultTimeout bounds every round trip. Timed-out calls surface as
// transport failures; they are never treated as invalid-parameters errors.
const DefaultTimeout = 60 * time.Second

// HTTPTransport posts JSON-RPC envelopes to a single MCP endpoint.
//
// The transport performs no retries of its own: network errors, timeouts and
// non-2xx statuses are returned to the caller. Bodies that decode to nothing
// usable yield an empty response map, not an error.
type HTTPTransport struct {
	endpoint string
	client   *http.Client
	headers  map[string]string

	session *SessionManager
	auditor Auditor
	logger  *zap.Logger
}

// Config configures the HTTP transport.
type Config struct {
	Endpoint    string            // MCP endpoint URL (required)
	BearerToken string            // Optional Authorization bearer token
	Headers     map[string]string // Extra request headers
	Timeout     time.Duration     // Default: DefaultTimeout
	Auditor     Auditor           // Default: NopAuditor
	Logger      *zap.Logger       // Default: zap.NewNop()
}

// New creates an HTTP transport for the given endpoint.
func New(config Config) (*HTTPTransport, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	auditor := config.Auditor
	if auditor == nil {
		auditor = NopAuditor{}
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	headers := map[string]string{}
	for k, v := range config.Headers {
		headers[k] = v
	}
	if config.BearerToken != "" {
		headers["Authorization"] = "Bearer " + config.BearerToken
	}

	t := &HTTPTransport{
		// A single trailing slash avoids 307 redirects (/mcp -> /mcp/).
		endpoint: strings.TrimRight(config.Endpoint, "/") + "/",
		client:   &http.Client{Timeout: timeout},
		headers:  headers,
		session:  NewSessionManager(),
		auditor:  auditor,
		logger:   logger,
	}

	logger.Debug("HTTP transport created", zap.String("endpoint", t.endpoint))

	return t, nil
}

// Post sends one JSON-RPC payload and decodes the response body. The
// returned map is empty (never nil) when the body holds no usable JSON
// object; callers must treat that as "no usable data", not success.
func (t *HTTPTransport) Post(ctx context.Context, payload []byte) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	if sessionID := t.session.GetSessionID(); sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}

	t.auditor.Request(payload)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	t.auditor.Response(body)

	// Store or replace the session token whenever the server supplies one.
	if sid := resp.Header.Get(SessionHeader); sid != "" {
		if err := t.session.SetSessionID(sid); err != nil {
			t.logger.Warn("Invalid session ID from server", zap.Error(err))
		}
	}

	if err := t.handleHTTPStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	return DecodeBody(body), nil
}

// handleHTTPStatus maps HTTP status codes to transport errors.
func (t *HTTPTransport) handleHTTPStatus(status int, body []byte) error {
	switch status {
	case http.StatusOK, http.StatusAccepted:
		return nil

	case http.StatusNotFound:
		t.logger.Warn("Session expired (404), clearing session")
		t.session.ClearSession()
		return ErrSessionExpired

	default:
		return fmt.Errorf("HTTP error %d: %s", status, body)
	}
}

// SessionID returns the session token captured from the server, if any.
func (t *HTTPTransport) SessionID() string {
	return t.session.GetSessionID()
}

// DecodeBody decodes a response body that is either plain JSON or SSE
// framed. For SSE bodies, the payload of each data line is parsed and the
// last well-formed JSON object wins (a single in-flight response is expected
// per request). Undecodable bodies yield an empty map.
func DecodeBody(body []byte) map[string]any {
	if bytes.Contains(body, []byte("data:")) {
		if decoded := decodeSSE(body); decoded != nil {
			return decoded
		}
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err == nil && decoded != nil {
		return decoded
	}
	return map[string]any{}
}

func decodeSSE(body []byte) map[string]any {
	events, _ := NewSSEParser(bytes.NewReader(body)).ParseAll()

	var last map[string]any
	for _, event := range events {
		// Multi-line data fields arrive joined; try the whole payload
		// first, then each line on its own.
		var m map[string]any
		if err := json.Unmarshal(event.Data, &m); err == nil && m != nil {
			last = m
			continue
		}
		for _, line := range strings.Split(string(event.Data), "\n") {
			var lm map[string]any
			if err := json.Unmarshal([]byte(line), &lm); err == nil && lm != nil {
				last = lm
			}
		}
	}
	return last
}
