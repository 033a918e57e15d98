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
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Default OpenAI-compatible chat configuration.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultEndpoint    = "https://api.openai.com/v1/chat/completions"
	DefaultTimeout     = 60 * time.Second
	DefaultTemperature = 0.2
)

// chatClient talks to an OpenAI-compatible chat-completions endpoint. It is
// deliberately minimal: one blocking call, JSON in, JSON out.
type chatClient struct {
	apiKey      string
	model       string
	endpoint    string
	temperature float64
	httpClient  *http.Client
}

// ChatConfig configures the planner's LLM access. An empty APIKey disables
// the LLM entirely; the planner then uses its deterministic fallbacks.
type ChatConfig struct {
	APIKey      string
	Model       string // Default: gpt-4o-mini
	BaseURL     string // Optional OpenAI-compatible base URL override
	Timeout     time.Duration
	Temperature float64
}

func newChatClient(config ChatConfig) *chatClient {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	endpoint := DefaultEndpoint
	if config.BaseURL != "" {
		endpoint = strings.TrimRight(config.BaseURL, "/") + "/chat/completions"
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Temperature == 0 {
		config.Temperature = DefaultTemperature
	}
	return &chatClient{
		apiKey:      config.APIKey,
		model:       config.Model,
		endpoint:    endpoint,
		temperature: config.Temperature,
		httpClient:  &http.Client{Timeout: config.Timeout},
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// chatJSON runs one system+user exchange and parses the reply as a JSON
// object. Non-JSON replies come back under a "raw" key; any failure yields
// an empty map so planning can fall back to defaults.
func (c *chatClient) chatJSON(ctx context.Context, system, user string) map[string]any {
	req := &chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
	}

	resp, err := c.callAPI(ctx, req)
	if err != nil {
		return map[string]any{}
	}
	if len(resp.Choices) == 0 {
		return map[string]any{}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return map[string]any{}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || parsed == nil {
		return map[string]any{"raw": content}
	}
	return parsed
}

func (c *chatClient) callAPI(ctx context.Context, req *chatCompletionRequest) (*chatCompletionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("OpenAI API error: %s (type: %s)", resp.Error.Message, resp.Error.Type)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, respBody)
	}
	return &resp, nil
}
