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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var runPrompt string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full data-quality assessment from a natural-language prompt",
	Example: `  tdq run --prompt "Assess data quality for schema sales.*"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		orch, err := newOrchestrator(cfg)
		if err != nil {
			return err
		}

		summary, err := orch.RunFull(cmd.Context(), runPrompt)
		if err != nil {
			return err
		}

		report := map[string]any{
			"summary":   summary,
			"discovery": orch.Results(),
			"profiles":  orch.Profiles(),
		}
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runPrompt, "prompt", "", "Natural-language assessment request (required)")
	_ = runCmd.MarkFlagRequired("prompt")
}
