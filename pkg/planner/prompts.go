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

// Prompt text for the planning and summarization exchanges. Every prompt
// demands a JSON-only reply; chatJSON tolerates models that answer in prose
// by wrapping the text under a "raw" key.
const (
	intentSystem = "You extract structured intent for Teradata data-quality assessment. " +
		"Return JSON with keys: goal, target_patterns (list), constraints (list)."
	intentUser = "Prompt: %s\nReturn JSON only."

	contextIntentSystem = "You are a Teradata data quality intent parser. Given: a user prompt, a schema inventory " +
		"(databases, tables, columns), and available tools metadata, produce JSON with keys: " +
		"goal, target_patterns (list), constraints (list). Use table/column names when relevant."
	contextIntentUser = "Context: %s\nReturn JSON only."

	discoveryPlanSystem = "Given a Teradata DQ intent object, decide discovery steps. " +
		"Always include: databaseList, tableList. Optionally tableDDL, tablePreview."
	discoveryPlanUser = "Intent: %s\nReturn JSON with steps list (each tool + rationale)."

	qualityPlanSystem = "Choose data quality metrics for Teradata tables. Prefer nulls, distinct, minmax."
	qualityPlanUser   = "Discovered: %s\nReturn JSON with dq_tools list."

	qualitySummarySystem = "Summarize Teradata data-quality metrics. Rank issues; propose actions."
	qualitySummaryUser   = "Metrics: %s\nReturn JSON with keys: summary, issues (list), recommendations (list)."
)

// Serialized context fed to the LLM is bounded to keep prompts inside the
// model's context window.
const (
	discoveredTruncateLen = 5000
	metricsTruncateLen    = 12000
)

// truncate shortens a string to max characters, marking the cut when there
// is room for the marker.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
