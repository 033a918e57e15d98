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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/teradata-labs/tdq/internal/log"
	"go.uber.org/zap"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools declared by the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		mcp, err := newClient(cfg)
		if err != nil {
			return err
		}

		if _, err := mcp.Initialize(cmd.Context()); err != nil {
			return err
		}
		if err := mcp.NotifyInitialized(cmd.Context()); err != nil {
			log.Warn("Ignoring failed initialized notification", zap.Error(err))
		}

		tools := mcp.ListTools(cmd.Context())
		if len(tools) == 0 {
			fmt.Println("no tools reported")
			return nil
		}
		for _, t := range tools {
			fmt.Printf("%-40s %s\n", t.Name, t.Description)
		}
		return nil
	},
}
