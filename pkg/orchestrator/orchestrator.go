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
// Package orchestrator sequences the data-quality assessment workflow:
// ingest prompt, derive intent, connect, discover schema, run quality
// metrics, summarize. Single tool failures never abort a run; each failure
// stays local and is reported through the response's error field.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/teradata-labs/tdq/pkg/discovery"
	"github.com/teradata-labs/tdq/pkg/mcp/client"
	"github.com/teradata-labs/tdq/pkg/mcp/protocol"
	"github.com/teradata-labs/tdq/pkg/planner"
	"github.com/teradata-labs/tdq/pkg/quality"
	"go.uber.org/zap"
)

// HandshakePolicy decides what a failed handshake does to the run. The
// transport core stays policy-free; this is an orchestration decision.
type HandshakePolicy int

const (
	// HandshakeLenient ignores a failed initialized notification; some
	// server revisions reject it while accepting subsequent calls.
	HandshakeLenient HandshakePolicy = iota
	// HandshakeStrict aborts the run on any handshake failure.
	HandshakeStrict
)

// DefaultMaxTablesProfiled bounds per-table DDL, preview and metric calls.
const DefaultMaxTablesProfiled = 5

// Orchestrator drives one assessment run. It owns the accumulated
// discovery results and quality profiles; the MCP client owns session
// affinity and failure memoization.
type Orchestrator struct {
	mcp     *client.Client
	planner *planner.Planner
	parser  *discovery.Parser
	logger  *zap.Logger

	policy    HandshakePolicy
	maxTables int

	prompt         string
	intent         *planner.Intent
	tools          []protocol.Tool
	discoveryPlan  *planner.DiscoveryPlan
	results        *discovery.Results
	qualityPlan    *planner.QualityPlan
	qualityResults []map[string]any
	profiles       map[string]*quality.TableProfile
	summary        *planner.Summary
}

// Config configures an orchestrator.
type Config struct {
	Client            *client.Client   // required
	Planner           *planner.Planner // required
	Logger            *zap.Logger
	Handshake         HandshakePolicy
	MaxTablesProfiled int // Default: DefaultMaxTablesProfiled
}

// New creates an orchestrator.
func New(config Config) (*Orchestrator, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if config.Planner == nil {
		return nil, fmt.Errorf("planner is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxTables := config.MaxTablesProfiled
	if maxTables == 0 {
		maxTables = DefaultMaxTablesProfiled
	}
	return &Orchestrator{
		mcp:       config.Client,
		planner:   config.Planner,
		parser:    discovery.NewParser(),
		logger:    logger,
		policy:    config.Handshake,
		maxTables: maxTables,
		results:   discovery.NewResults(),
		profiles:  map[string]*quality.TableProfile{},
	}, nil
}

// IngestUserPrompt stores the raw natural-language request.
func (o *Orchestrator) IngestUserPrompt(prompt string) {
	o.prompt = prompt
}

// DeriveIntent converts the ingested prompt into structured intent.
func (o *Orchestrator) DeriveIntent(ctx context.Context) (planner.Intent, error) {
	if o.prompt == "" {
		return planner.Intent{}, fmt.Errorf("no user prompt set")
	}
	intent := o.planner.ParseIntent(ctx, o.prompt)
	o.intent = &intent
	return intent, nil
}

// EnsureConnection performs the initialize handshake and, per policy,
// tolerates or propagates a failed initialized notification.
func (o *Orchestrator) EnsureConnection(ctx context.Context) (client.Response, error) {
	resp, err := o.mcp.Initialize(ctx)
	if err != nil {
		return nil, err
	}
	if err := o.mcp.NotifyInitialized(ctx); err != nil {
		if o.policy == HandshakeStrict {
			return nil, fmt.Errorf("initialized notification failed: %w", err)
		}
		o.logger.Warn("Ignoring failed initialized notification", zap.Error(err))
	}
	return resp, nil
}

// DiscoverSchema runs the planned metadata tools and folds their responses
// into the discovery results. Plans are filtered against the server's tool
// catalog when one is available.
func (o *Orchestrator) DiscoverSchema(ctx context.Context) (*discovery.Results, error) {
	if o.intent == nil {
		return nil, fmt.Errorf("intent must be derived before discovery")
	}

	o.tools = o.mcp.ListTools(ctx)
	plan := o.planner.PlanDiscovery(ctx, *o.intent)
	plan = planner.FilterPlanToKnownTools(plan, o.tools)
	o.discoveryPlan = &plan

	for _, step := range plan.Steps {
		canonical := client.CanonicalToolName(step.Tool)
		switch {
		case strings.HasSuffix(canonical, "tableDDL"):
			o.callPerTable(ctx, step.Tool)
		case strings.HasSuffix(canonical, "tablePreview"):
			o.callPerTable(ctx, step.Tool)
		case strings.HasSuffix(canonical, "tableList"):
			args := client.NewArguments()
			if db := o.databaseFromIntent(); db != "" {
				args.Set("database_name", db)
			}
			o.callAndParse(ctx, step.Tool, args)
		default:
			o.callAndParse(ctx, step.Tool, nil)
		}
	}
	return o.results, nil
}

// callPerTable invokes a per-table discovery tool for each table found so
// far, bounded by the profiling cap.
func (o *Orchestrator) callPerTable(ctx context.Context, tool string) {
	for _, fqn := range o.boundedTables() {
		db, tbl := quality.SplitTableName(fqn)
		args := client.NewArguments()
		if db != "" {
			args.Set("database_name", db)
		}
		args.Set("table_name", tbl)
		o.callAndParse(ctx, tool, args)
	}
}

func (o *Orchestrator) callAndParse(ctx context.Context, tool string, args *client.Arguments) {
	resp, err := o.mcp.CallTool(ctx, tool, args)
	if err != nil {
		o.logger.Warn("Discovery tool failed", zap.String("tool", tool), zap.Error(err))
		return
	}
	o.parser.Apply(resp.Tool(), resp, o.results)
}

// RefineIntent re-derives the intent with the discovered schema inventory
// and the server's tool catalog as context, sharpening vague prompts into
// concrete targets before metrics run. Without an LLM the initial intent
// stands; a context-free fallback would erase what the first pass found.
func (o *Orchestrator) RefineIntent(ctx context.Context) (planner.Intent, error) {
	if o.intent == nil {
		return planner.Intent{}, fmt.Errorf("intent must be derived before refinement")
	}
	if !o.planner.Available() {
		return *o.intent, nil
	}
	intent := o.planner.ParseContextualIntent(ctx, o.prompt, o.results, o.tools)
	o.intent = &intent
	return intent, nil
}

// RunQualityMetrics executes the planned quality tools. With discovered
// tables each tool runs per table (bounded); otherwise each tool runs once
// without arguments as a best effort.
func (o *Orchestrator) RunQualityMetrics(ctx context.Context) ([]map[string]any, error) {
	plan := o.planner.PlanQuality(ctx, o.results)
	o.qualityPlan = &plan

	tables := o.boundedTables()
	for _, spec := range plan.Tools {
		if len(tables) == 0 {
			o.runQualityTool(ctx, spec.Tool, "", nil)
			continue
		}
		for _, fqn := range tables {
			db, tbl := quality.SplitTableName(fqn)
			args := client.NewArguments()
			if db != "" {
				args.Set("database_name", db)
			}
			args.Set("table_name", tbl)
			o.runQualityTool(ctx, spec.Tool, fqn, args)
		}
	}
	return o.qualityResults, nil
}

func (o *Orchestrator) runQualityTool(ctx context.Context, tool, fqn string, args *client.Arguments) {
	resp, err := o.mcp.CallTool(ctx, tool, args)
	if err != nil {
		o.logger.Warn("Quality tool failed", zap.String("tool", tool), zap.Error(err))
		return
	}
	record := map[string]any{"tool": resp.Tool(), "response": map[string]any(resp)}
	if fqn != "" {
		record["table"] = fqn
		profile := o.profileFor(fqn)
		profile.Observe(resp.Tool(), resp)
	}
	o.qualityResults = append(o.qualityResults, record)
}

func (o *Orchestrator) profileFor(fqn string) *quality.TableProfile {
	if p, ok := o.profiles[fqn]; ok {
		return p
	}
	db, tbl := quality.SplitTableName(fqn)
	p := quality.NewTableProfile(db, tbl)
	if _, ok := o.results.DDL[fqn]; ok {
		p.DDLAvailable = true
	}
	o.profiles[fqn] = p
	return p
}

// Summarize interprets the collected metrics into the final report.
func (o *Orchestrator) Summarize(ctx context.Context) planner.Summary {
	summary := o.planner.InterpretQuality(ctx, o.qualityResults)
	o.summary = &summary
	return summary
}

// RunFull executes every step in order and returns the final summary.
func (o *Orchestrator) RunFull(ctx context.Context, prompt string) (planner.Summary, error) {
	o.IngestUserPrompt(prompt)
	if _, err := o.DeriveIntent(ctx); err != nil {
		return planner.Summary{}, err
	}
	if _, err := o.EnsureConnection(ctx); err != nil {
		return planner.Summary{}, fmt.Errorf("handshake failed: %w", err)
	}
	if _, err := o.DiscoverSchema(ctx); err != nil {
		return planner.Summary{}, err
	}
	if _, err := o.RefineIntent(ctx); err != nil {
		return planner.Summary{}, err
	}
	if _, err := o.RunQualityMetrics(ctx); err != nil {
		return planner.Summary{}, err
	}
	return o.Summarize(ctx), nil
}

// Results exposes the accumulated discovery results (read-only for callers;
// the parser is the sole writer).
func (o *Orchestrator) Results() *discovery.Results {
	return o.results
}

// Profiles exposes the per-table quality profiles keyed by qualified name.
func (o *Orchestrator) Profiles() map[string]*quality.TableProfile {
	return o.profiles
}

// boundedTables returns up to maxTables discovered table names.
func (o *Orchestrator) boundedTables() []string {
	tables := o.results.Tables
	if len(tables) > o.maxTables {
		tables = tables[:o.maxTables]
	}
	return tables
}

// databaseFromIntent extracts a database hint from target patterns shaped
// like "db.*" or "db.table".
func (o *Orchestrator) databaseFromIntent() string {
	if o.intent == nil {
		return ""
	}
	for _, pattern := range o.intent.TargetPatterns {
		if i := strings.Index(pattern, "."); i > 0 {
			return pattern[:i]
		}
	}
	return ""
}
