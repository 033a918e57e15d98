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
// Package client implements the adaptive MCP client for the Teradata MCP
// server: JSON-RPC calls with session affinity, tool-name canonicalization,
// argument-shape negotiation and failure memoization.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teradata-labs/tdq/pkg/mcp/protocol"
	"github.com/teradata-labs/tdq/pkg/mcp/transport"
	"go.uber.org/zap"
)

// Client is a JSON-RPC-over-HTTP client bound to one MCP server session.
//
// A Client owns its session-affinity token and failure cache for its whole
// lifetime; constructing a new Client is the only way to reset them. Clients
// are synchronous and must not be shared across goroutines: parallel
// workloads should serialize access or run one Client per lane.
type Client struct {
	transport *transport.HTTPTransport
	logger    *zap.Logger
	failures  *failureCache
	info      protocol.Implementation
}

// Config configures the MCP client.
type Config struct {
	Endpoint    string        // MCP endpoint URL (required)
	BearerToken string        // Optional bearer token
	Timeout     time.Duration // Round-trip timeout, default 60s
	Logger      *zap.Logger
	Auditor     transport.Auditor

	// Client info sent during the initialize handshake.
	Name    string // Default: dq-orchestrator
	Version string // Default: 0.1.0
}

// New creates a client for the given endpoint.
func New(config Config) (*Client, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	t, err := transport.New(transport.Config{
		Endpoint:    config.Endpoint,
		BearerToken: config.BearerToken,
		Timeout:     config.Timeout,
		Auditor:     config.Auditor,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	info := protocol.Implementation{Name: config.Name, Version: config.Version}
	if info.Name == "" {
		info.Name = "dq-orchestrator"
	}
	if info.Version == "" {
		info.Version = "0.1.0"
	}

	return &Client{
		transport: t,
		logger:    logger,
		failures:  newFailureCache(),
		info:      info,
	}, nil
}

// Call sends a JSON-RPC request with a fresh random id and returns the
// decoded response. params may be nil for parameter-less methods; a nil
// params is omitted from the wire payload.
func (c *Client) Call(ctx context.Context, method string, params any) (Response, error) {
	return c.CallWithID(ctx, uuid.NewString(), method, params)
}

// CallWithID sends a JSON-RPC request with a caller-supplied id. Used for
// fire-and-forget notifications whose reply is not awaited meaningfully.
func (c *Client) CallWithID(ctx context.Context, id, method string, params any) (Response, error) {
	req, err := protocol.NewRequest(id, method, params)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	c.logger.Debug("Sending JSON-RPC request",
		zap.String("method", method),
		zap.String("id", id))

	decoded, err := c.transport.Post(ctx, payload)
	if err != nil {
		return nil, err
	}
	return Response(decoded), nil
}

// Initialize performs the MCP initialize handshake and returns the raw
// server response. The initialized notification is sent separately via
// NotifyInitialized so the orchestration layer can choose its failure
// policy.
func (c *Client) Initialize(ctx context.Context) (Response, error) {
	params := protocol.InitializeParams{
		ProtocolVersion: protocol.ProtocolVersion,
		Capabilities: protocol.ClientCapabilities{
			Tools:     map[string]any{},
			Resources: map[string]any{},
			Prompts:   map[string]any{},
		},
		ClientInfo: c.info,
	}
	resp, err := c.Call(ctx, "initialize", params)
	if err != nil {
		return nil, fmt.Errorf("initialize failed: %w", err)
	}
	return resp, nil
}

// NotifyInitialized completes the handshake. Some server revisions require
// it, others reject it; callers decide whether a failure is fatal.
func (c *Client) NotifyInitialized(ctx context.Context) error {
	_, err := c.CallWithID(ctx, "0", "initialized", map[string]any{
		"clientCapabilities": map[string]any{},
	})
	return err
}

// ListTools returns the server-declared tool catalog. Failures degrade to an
// empty slice: plan filtering treats an unknown catalog as "accept all".
func (c *Client) ListTools(ctx context.Context) []protocol.Tool {
	resp, err := c.Call(ctx, "tools/list", map[string]any{})
	if err != nil {
		c.logger.Warn("tools/list failed", zap.Error(err))
		return nil
	}

	base := resp.Result()
	if base == nil {
		base = resp
	}
	raw, ok := base["tools"].([]any)
	if !ok {
		return nil
	}

	tools := make([]protocol.Tool, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		encoded, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		var tool protocol.Tool
		if err := json.Unmarshal(encoded, &tool); err != nil {
			continue
		}
		tools = append(tools, tool)
	}
	return tools
}

// SessionID returns the session-affinity token captured from the server.
func (c *Client) SessionID() string {
	return c.transport.SessionID()
}
