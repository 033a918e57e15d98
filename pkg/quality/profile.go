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
// Package quality builds per-table and per-column quality profiles from
// quality-metric tool responses.
package quality

import "strings"

// ColumnProfile holds the metrics observed for one column. Counter fields
// are pointers so "not observed" stays distinct from zero.
type ColumnProfile struct {
	Name          string         `json:"name"`
	NullCount     *int64         `json:"null_count,omitempty"`
	NullPct       *float64       `json:"null_pct,omitempty"`
	DistinctCount *int64         `json:"distinct_count,omitempty"`
	MissingRows   *int64         `json:"missing_rows,omitempty"`
	Stats         map[string]any `json:"stats,omitempty"`
}

// TableProfile aggregates column profiles for one table.
type TableProfile struct {
	Database     string                    `json:"database,omitempty"`
	Table        string                    `json:"table"`
	Columns      map[string]*ColumnProfile `json:"columns"`
	DDLAvailable bool                      `json:"ddl_available"`
}

// NewTableProfile creates an empty profile for database.table.
func NewTableProfile(database, table string) *TableProfile {
	return &TableProfile{
		Database: database,
		Table:    table,
		Columns:  map[string]*ColumnProfile{},
	}
}

// Column returns the profile for name, creating it on first use.
func (p *TableProfile) Column(name string) *ColumnProfile {
	if c, ok := p.Columns[name]; ok {
		return c
	}
	c := &ColumnProfile{Name: name, Stats: map[string]any{}}
	p.Columns[name] = c
	return c
}

// SplitTableName splits a possibly qualified table name into database and
// table parts. Single-part names have an empty database; names with more
// than two parts keep the last two as database.table.
func SplitTableName(fqn string) (database, table string) {
	parts := strings.Split(fqn, ".")
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return parts[len(parts)-2], parts[len(parts)-1]
	}
}
