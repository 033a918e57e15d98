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
// Package discovery accumulates normalized schema-discovery results from
// free-form metadata tool responses.
package discovery

// Results is the accumulated, deduplicated record of databases, tables, DDL
// and previews learned from metadata tool calls. The Parser is the sole
// writer; list fields preserve first-seen order with duplicates suppressed.
type Results struct {
	Databases []string                    `json:"databases"`
	Tables    []string                    `json:"tables"`
	DDL       map[string]string           `json:"ddl"`
	Previews  map[string][]map[string]any `json:"previews"`
}

// NewResults creates an empty accumulator.
func NewResults() *Results {
	return &Results{
		Databases: []string{},
		Tables:    []string{},
		DDL:       map[string]string{},
		Previews:  map[string][]map[string]any{},
	}
}

// mergeUnique appends new values preserving first-seen order; values already
// present (by exact string equality) are not duplicated.
func mergeUnique(target []string, values []string) []string {
	seen := make(map[string]struct{}, len(target))
	for _, v := range target {
		seen[v] = struct{}{}
	}
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		target = append(target, v)
		seen[v] = struct{}{}
	}
	return target
}
