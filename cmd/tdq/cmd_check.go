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
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/teradata-labs/tdq/internal/log"
	"github.com/teradata-labs/tdq/pkg/config"
	"github.com/teradata-labs/tdq/pkg/mcp/client"
	"github.com/teradata-labs/tdq/pkg/mcp/protocol"
	"github.com/teradata-labs/tdq/pkg/quality"
	"go.uber.org/zap"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run configured null/range/uniqueness checks per dataset",
	Long: `check reads the datasets section of the config file and runs the
corresponding quality tools for each declared table and column. Tool
arguments are filtered and validated against the server's declared input
schemas when a tool catalog is available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(cfg.Datasets) == 0 {
			return fmt.Errorf("no datasets configured")
		}
		mcp, err := newClient(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if _, err := mcp.Initialize(ctx); err != nil {
			return err
		}
		if err := mcp.NotifyInitialized(ctx); err != nil {
			if cfg.MCP.HandshakeStrict {
				return fmt.Errorf("initialized notification failed: %w", err)
			}
			log.Warn("Ignoring failed initialized notification", zap.Error(err))
		}

		catalog := map[string]protocol.Tool{}
		for _, t := range mcp.ListTools(ctx) {
			catalog[t.Name] = t
		}

		checker := &datasetChecker{mcp: mcp, catalog: catalog}
		for _, dataset := range cfg.Datasets {
			if dataset.Table == "" {
				continue
			}
			checker.run(ctx, dataset)
		}

		out, err := json.MarshalIndent(checker.profiles, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

type datasetChecker struct {
	mcp      *client.Client
	catalog  map[string]protocol.Tool
	profiles map[string]*quality.TableProfile
}

func (c *datasetChecker) run(ctx context.Context, dataset config.DatasetConfig) {
	db, tbl := quality.SplitTableName(dataset.Table)
	if c.profiles == nil {
		c.profiles = map[string]*quality.TableProfile{}
	}
	profile, ok := c.profiles[dataset.Table]
	if !ok {
		profile = quality.NewTableProfile(db, tbl)
		c.profiles[dataset.Table] = profile
	}

	tableArgs := func() *client.Arguments {
		args := client.NewArguments()
		if db != "" {
			args.Set("database_name", db)
		}
		args.Set("table_name", tbl)
		return args
	}

	if len(dataset.NullCheck.Columns) > 0 {
		// Table-level missing summary first, then per-column detail.
		c.call(ctx, profile, "qlty_missingValues", tableArgs())
		for _, col := range dataset.NullCheck.Columns {
			c.call(ctx, profile, "qlty_rowsWithMissingValues", tableArgs().Set("column_name", col))
		}
	}
	for _, rng := range dataset.RangeCheck.Columns {
		if rng.Column == "" {
			continue
		}
		c.call(ctx, profile, "qlty_univariateStatistics", tableArgs().Set("column_name", rng.Column))
	}
	for _, col := range dataset.UniquenessCheck.Columns {
		c.call(ctx, profile, "qlty_distinctCategories", tableArgs().Set("column_name", col))
	}
}

func (c *datasetChecker) call(ctx context.Context, profile *quality.TableProfile, tool string, args *client.Arguments) {
	canonical := client.CanonicalToolName(tool)
	if t, ok := c.catalog[canonical]; ok {
		args = client.ArgumentsFromSchema(t, args)
		if err := client.ValidateArguments(t, args); err != nil {
			// Negotiation may still find an accepted spelling.
			log.Warn("Arguments failed schema validation", zap.String("tool", canonical), zap.Error(err))
		}
	}
	resp, err := c.mcp.CallTool(ctx, tool, args)
	if err != nil {
		log.Warn("Check tool failed", zap.String("tool", canonical), zap.Error(err))
		return
	}
	if rpcErr := resp.Err(); rpcErr != nil {
		log.Warn("Check tool returned error",
			zap.String("tool", canonical),
			zap.Int("code", rpcErr.Code),
			zap.String("message", rpcErr.Message))
		return
	}
	profile.Observe(resp.Tool(), resp)
}
