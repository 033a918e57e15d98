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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalToolName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short base alias", "databaseList", "base_databaseList"},
		{"short quality alias", "missingValues", "qlty_missingValues"},
		{"rows with missing values", "rowsWithMissingValues", "qlty_rowsWithMissingValues"},
		{"redundant base prefix", "td_base_tableList", "base_tableList"},
		{"redundant quality prefix", "td_qlty_distinctCategories", "qlty_distinctCategories"},
		{"already canonical", "base_tableDDL", "base_tableDDL"},
		{"unknown passthrough", "someVendorTool", "someVendorTool"},
		{"empty passthrough", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalToolName(tt.in))
		})
	}
}

func TestCanonicalToolNameIdempotent(t *testing.T) {
	inputs := []string{
		"databaseList", "td_base_tableList", "qlty_missingValues", "unknown",
	}
	for _, in := range inputs {
		once := CanonicalToolName(in)
		assert.Equal(t, once, CanonicalToolName(once), "not idempotent for %q", in)
	}
}
