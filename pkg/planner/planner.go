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
// Package planner derives intent, discovery plans, quality plans and
// summaries via an OpenAI-compatible LLM, with deterministic safe defaults
// when no LLM is configured or a call fails.
package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/teradata-labs/tdq/pkg/discovery"
	"github.com/teradata-labs/tdq/pkg/mcp/client"
	"github.com/teradata-labs/tdq/pkg/mcp/protocol"
	"go.uber.org/zap"
)

// Intent is the structured reading of the user's natural-language request.
type Intent struct {
	Goal           string   `json:"goal"`
	TargetPatterns []string `json:"target_patterns"`
	Constraints    []string `json:"constraints"`
}

// DiscoveryStep is one planned metadata tool invocation.
type DiscoveryStep struct {
	Tool string `json:"tool"`
	Why  string `json:"why,omitempty"`
}

// DiscoveryPlan orders the metadata tools to run.
type DiscoveryPlan struct {
	Steps []DiscoveryStep `json:"steps"`
}

// QualityToolSpec is one planned quality-metric tool.
type QualityToolSpec struct {
	Tool   string `json:"tool"`
	Reason string `json:"reason,omitempty"`
}

// QualityPlan selects the quality-metric tools to run.
type QualityPlan struct {
	Tools []QualityToolSpec `json:"dq_tools"`
}

// Summary is the final interpretation of collected metrics.
type Summary struct {
	Summary         string `json:"summary"`
	Issues          []any  `json:"issues"`
	Recommendations []any  `json:"recommendations"`
}

// Planner encapsulates all LLM interactions. With no API key it degrades to
// deterministic defaults, so the workflow runs unattended in CI and air
// gapped environments.
type Planner struct {
	chat   *chatClient
	logger *zap.Logger
}

// Config configures the planner.
type Config struct {
	Chat   ChatConfig
	Logger *zap.Logger
}

// New creates a planner. Chat access is optional.
func New(config Config) *Planner {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Planner{logger: logger}
	if config.Chat.APIKey != "" {
		p.chat = newChatClient(config.Chat)
	}
	return p
}

// Available reports whether LLM planning is enabled.
func (p *Planner) Available() bool {
	return p.chat != nil
}

func (p *Planner) chatJSON(ctx context.Context, system, user string) map[string]any {
	if p.chat == nil {
		return map[string]any{}
	}
	data := p.chat.chatJSON(ctx, system, user)
	if len(data) == 0 {
		p.logger.Warn("LLM returned no usable JSON, falling back to defaults")
	}
	return data
}

// ParseIntent extracts goal, target patterns and constraints from a
// free-form prompt. Without an LLM the prompt itself becomes the goal.
func (p *Planner) ParseIntent(ctx context.Context, prompt string) Intent {
	data := p.chatJSON(ctx, intentSystem, fmt.Sprintf(intentUser, prompt))
	return intentFrom(data, prompt)
}

// ParseContextualIntent extracts intent with schema inventory and tool
// catalog as additional context.
func (p *Planner) ParseContextualIntent(ctx context.Context, prompt string, results *discovery.Results, tools []protocol.Tool) Intent {
	contextBlob, err := json.Marshal(map[string]any{
		"prompt": prompt,
		"schema": results,
		"tools":  tools,
	})
	if err != nil {
		return Intent{Goal: prompt}
	}
	user := fmt.Sprintf(contextIntentUser, truncate(string(contextBlob), metricsTruncateLen))
	data := p.chatJSON(ctx, contextIntentSystem, user)
	return intentFrom(data, prompt)
}

func intentFrom(data map[string]any, prompt string) Intent {
	intent := Intent{Goal: prompt, TargetPatterns: []string{}, Constraints: []string{}}
	if len(data) == 0 {
		return intent
	}
	if goal, ok := data["goal"].(string); ok && goal != "" {
		intent.Goal = goal
	}
	intent.TargetPatterns = stringList(data["target_patterns"])
	intent.Constraints = stringList(data["constraints"])
	return intent
}

// PlanDiscovery decides the metadata tools to run for an intent. The
// fallback plan lists databases then tables.
func (p *Planner) PlanDiscovery(ctx context.Context, intent Intent) DiscoveryPlan {
	intentJSON, _ := json.Marshal(intent)
	data := p.chatJSON(ctx, discoveryPlanSystem, fmt.Sprintf(discoveryPlanUser, intentJSON))

	var steps []DiscoveryStep
	if raw, ok := data["steps"].([]any); ok {
		for _, item := range raw {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			tool, ok := entry["tool"].(string)
			if !ok || tool == "" {
				continue
			}
			why, _ := entry["why"].(string)
			steps = append(steps, DiscoveryStep{Tool: tool, Why: why})
		}
	}
	if len(steps) == 0 {
		steps = []DiscoveryStep{
			{Tool: "base_databaseList", Why: "List databases"},
			{Tool: "base_tableList", Why: "List tables in targets"},
		}
	}
	return DiscoveryPlan{Steps: steps}
}

// PlanQuality selects quality-metric tools based on what discovery found.
// The fallback covers nulls, distinct counts and univariate statistics.
func (p *Planner) PlanQuality(ctx context.Context, results *discovery.Results) QualityPlan {
	summary := map[string]any{}
	if results != nil {
		ddlKeys := make([]string, 0, len(results.DDL))
		for k := range results.DDL {
			ddlKeys = append(ddlKeys, k)
		}
		summary["databases"] = results.Databases
		summary["tables"] = results.Tables
		summary["ddl_keys"] = ddlKeys
	}
	discovered, _ := json.Marshal(summary)
	user := fmt.Sprintf(qualityPlanUser, truncate(string(discovered), discoveredTruncateLen))
	data := p.chatJSON(ctx, qualityPlanSystem, user)

	var specs []QualityToolSpec
	if raw, ok := data["dq_tools"].([]any); ok {
		for _, item := range raw {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			tool, ok := entry["tool"].(string)
			if !ok || tool == "" {
				continue
			}
			reason, _ := entry["reason"].(string)
			specs = append(specs, QualityToolSpec{Tool: tool, Reason: reason})
		}
	}
	if len(specs) == 0 {
		specs = []QualityToolSpec{
			{Tool: "qlty_missingValues", Reason: "Null ratios"},
			{Tool: "qlty_distinctCategories", Reason: "Distinct counts"},
			{Tool: "qlty_univariateStatistics", Reason: "Min/max"},
		}
	}
	return QualityPlan{Tools: specs}
}

// InterpretQuality summarizes collected metric outputs.
func (p *Planner) InterpretQuality(ctx context.Context, results []map[string]any) Summary {
	metrics, _ := json.Marshal(results)
	user := fmt.Sprintf(qualitySummaryUser, truncate(string(metrics), metricsTruncateLen))
	data := p.chatJSON(ctx, qualitySummarySystem, user)

	if len(data) == 0 {
		return Summary{Summary: "No interpretation available", Issues: []any{}, Recommendations: []any{}}
	}
	s := Summary{Summary: "(missing summary)", Issues: []any{}, Recommendations: []any{}}
	if text, ok := data["summary"].(string); ok && text != "" {
		s.Summary = text
	}
	if issues, ok := data["issues"].([]any); ok {
		s.Issues = issues
	}
	if recs, ok := data["recommendations"].([]any); ok {
		s.Recommendations = recs
	}
	return s
}

// FilterPlanToKnownTools drops discovery steps whose canonical tool name is
// absent from the server catalog. An empty catalog accepts every step
// (tools/list is optional on some server versions).
func FilterPlanToKnownTools(plan DiscoveryPlan, tools []protocol.Tool) DiscoveryPlan {
	if len(tools) == 0 {
		return plan
	}
	known := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		known[t.Name] = struct{}{}
	}
	filtered := make([]DiscoveryStep, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		if _, ok := known[client.CanonicalToolName(step.Tool)]; ok {
			filtered = append(filtered, step)
		}
	}
	return DiscoveryPlan{Steps: filtered}
}

func stringList(v any) []string {
	out := []string{}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
