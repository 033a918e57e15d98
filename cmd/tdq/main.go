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
// tdq assesses Teradata data quality through the Teradata MCP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teradata-labs/tdq/internal/log"
	"github.com/teradata-labs/tdq/pkg/config"
	"github.com/teradata-labs/tdq/pkg/mcp/client"
	"github.com/teradata-labs/tdq/pkg/mcp/transport"
	"github.com/teradata-labs/tdq/pkg/orchestrator"
	"github.com/teradata-labs/tdq/pkg/planner"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "tdq",
	Short: "Teradata MCP data-quality client",
	Long: `tdq talks to a Teradata MCP server over JSON-RPC/HTTP and assesses data
quality: it discovers databases, tables and DDL, runs quality-metric tools
with adaptive argument negotiation, and summarizes the findings.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ./tdq.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadConfig loads configuration and initializes the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Setup(debug || cfg.Logging.Debug, cfg.Logging.File)
	return cfg, nil
}

// newClient builds the MCP client with an auditing transport.
func newClient(cfg *config.Config) (*client.Client, error) {
	return client.New(client.Config{
		Endpoint:    cfg.MCP.Endpoint,
		BearerToken: cfg.MCP.BearerToken,
		Logger:      log.Logger(),
		Auditor:     transport.NewZapAuditor(log.Logger()),
	})
}

// newOrchestrator wires client, planner and handshake policy together.
func newOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, error) {
	mcp, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	p := planner.New(planner.Config{
		Chat: planner.ChatConfig{
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			BaseURL: cfg.LLM.BaseURL,
		},
		Logger: log.Logger(),
	})
	policy := orchestrator.HandshakeLenient
	if cfg.MCP.HandshakeStrict {
		policy = orchestrator.HandshakeStrict
	}
	return orchestrator.New(orchestrator.Config{
		Client:    mcp,
		Planner:   p,
		Logger:    log.Logger(),
		Handshake: policy,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
