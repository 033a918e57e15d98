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
package client

import "strings"

// toolAliases maps short logical tool names to the namespaced names the
// Teradata MCP server recognizes.
var toolAliases = map[string]string{
	"databaseList":          "base_databaseList",
	"tableList":             "base_tableList",
	"tableDDL":              "base_tableDDL",
	"tablePreview":          "base_tablePreview",
	"missingValues":         "qlty_missingValues",
	"rowsWithMissingValues": "qlty_rowsWithMissingValues",
	"distinctCategories":    "qlty_distinctCategories",
	"univariateStatistics":  "qlty_univariateStatistics",
}

// CanonicalToolName maps a short logical tool name to the server's
// namespaced canonical name and normalizes redundantly prefixed variants
// (td_base_databaseList -> base_databaseList). Unknown names pass through
// verbatim; the server rejects them if invalid. Canonicalization is
// idempotent and has no state or network dependency.
func CanonicalToolName(name string) string {
	if canonical, ok := toolAliases[name]; ok {
		return canonical
	}
	switch {
	case strings.HasPrefix(name, "td_base_"):
		return "base_" + strings.TrimPrefix(name, "td_base_")
	case strings.HasPrefix(name, "td_qlty_"):
		return "qlty_" + strings.TrimPrefix(name, "td_qlty_")
	}
	return name
}
