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
package discovery

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// previewCap bounds stored row previews per tool.
const previewCap = 50

var (
	databaseKeys = []string{"databases", "databaseList", "dbs"}
	tableKeys    = []string{"tables", "tableList", "tbls"}
	previewKeys  = []string{"rows", "preview", "sample"}

	ddlTableRe = regexp.MustCompile(`(?i)CREATE\s+TABLE\s+([A-Za-z0-9_\.]+)`)
)

// Parser heuristically interprets discovery tool outputs into structured
// results. Classification is shape-based and best-effort: unrecognized or
// malformed payloads are skipped silently, never raised, so an
// under-populated accumulator is a valid outcome.
type Parser struct{}

// NewParser creates a discovery parser.
func NewParser() *Parser {
	return &Parser{}
}

// Apply inspects a raw tool response and merges any recognized findings
// into the accumulator.
func (p *Parser) Apply(tool string, raw map[string]any, results *Results) {
	if raw == nil || results == nil {
		return
	}

	// Unwrap one layer: prefer a nested result mapping when present.
	base := raw
	if nested, ok := raw["result"].(map[string]any); ok {
		base = nested
	}

	// Extract the payload: content, then data, else the raw response.
	var payload any = raw
	if v, ok := base["content"]; ok {
		payload = v
	} else if v, ok := base["data"]; ok {
		payload = v
	}

	switch v := payload.(type) {
	case []any:
		p.classifyList(tool, v, results)
	case map[string]any:
		p.classifyMapping(tool, v, results)
	}
}

// classifyList decides whether a homogeneous string list names databases or
// tables. The heuristic (uppercase ratio, separator presence, tool-name
// suffix) is approximate; ambiguous lists are ignored.
func (p *Parser) classifyList(tool string, values []any, results *Results) {
	if len(values) == 0 {
		return
	}
	strs := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return
		}
		strs = append(strs, s)
	}

	upper := 0
	containsDot := false
	for _, s := range strs {
		if isUpperString(s) {
			upper++
		}
		if strings.Contains(s, ".") {
			containsDot = true
		}
	}
	upperScore := float64(upper) / float64(len(strs))

	if !containsDot && upperScore > 0.3 && strings.HasSuffix(tool, "databaseList") {
		results.Databases = mergeUnique(results.Databases, strs)
		return
	}
	if containsDot || strings.HasSuffix(tool, "tableList") {
		results.Tables = mergeUnique(results.Tables, strs)
	}
}

// classifyMapping scans a mapping payload for known key aliases, embedded
// DDL text and dict-shaped row previews.
func (p *Parser) classifyMapping(tool string, payload map[string]any, results *Results) {
	for _, key := range databaseKeys {
		if values, ok := stringSlice(payload[key]); ok {
			results.Databases = mergeUnique(results.Databases, values)
		}
	}
	for _, key := range tableKeys {
		if values, ok := stringSlice(payload[key]); ok {
			results.Tables = mergeUnique(results.Tables, values)
		}
	}

	// Sorted keys keep the scan deterministic when several fields carry DDL.
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s, ok := payload[k].(string)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToUpper(s), "CREATE TABLE") {
			p.storeDDL(s, results)
			break
		}
	}

	for _, key := range previewKeys {
		rows, ok := payload[key].([]any)
		if !ok || len(rows) == 0 {
			continue
		}
		if _, ok := rows[0].(map[string]any); !ok {
			continue
		}
		records := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			record, ok := row.(map[string]any)
			if !ok {
				continue
			}
			records = append(records, record)
			if len(records) == previewCap {
				break
			}
		}
		results.Previews[tool] = records
	}
}

// storeDDL extracts the table identifier following the CREATE TABLE
// keywords and stores the full DDL text keyed by it. When extraction fails
// a synthetic table_N placeholder is used.
func (p *Parser) storeDDL(ddl string, results *Results) {
	name := fmt.Sprintf("table_%d", len(results.DDL)+1)
	if m := ddlTableRe.FindStringSubmatch(ddl); m != nil {
		name = m[1]
	}
	results.DDL[name] = ddl
}

// stringSlice converts a []any of strings; non-string members disqualify
// the whole list.
func stringSlice(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// isUpperString reports whether s has at least one cased character and all
// cased characters are uppercase.
func isUpperString(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
