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
	"github.com/stretchr/testify/require"
	"github.com/teradata-labs/tdq/pkg/mcp/protocol"
)

func objectSchema(required []any, props ...string) map[string]any {
	properties := map[string]any{}
	for _, p := range props {
		properties[p] = map[string]any{"type": "string"}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if required != nil {
		schema["required"] = required
	}
	return schema
}

func TestArgumentsFromSchemaFiltersUnknownKeys(t *testing.T) {
	tool := protocol.Tool{
		Name:        "base_tableList",
		InputSchema: objectSchema(nil, "database_name"),
	}
	proposed := NewArguments().
		Set("database_name", "SALES").
		Set("verbose", true)

	args := ArgumentsFromSchema(tool, proposed)
	assert.Equal(t, []string{"database_name"}, args.Keys())
}

func TestArgumentsFromSchemaFillsRequiredFromEnv(t *testing.T) {
	t.Setenv("DATABASE_NAME", "DEMO")
	tool := protocol.Tool{
		Name:        "base_tableList",
		InputSchema: objectSchema([]any{"database_name"}, "database_name"),
	}

	args := ArgumentsFromSchema(tool, NewArguments())
	v, ok := args.Get("database_name")
	require.True(t, ok)
	assert.Equal(t, "DEMO", v)
}

func TestArgumentsFromSchemaNoSchemaPassthrough(t *testing.T) {
	tool := protocol.Tool{Name: "vendor_tool"}
	proposed := NewArguments().Set("anything", 1)

	args := ArgumentsFromSchema(tool, proposed)
	assert.Equal(t, []string{"anything"}, args.Keys())
}

func TestValidateArguments(t *testing.T) {
	tool := protocol.Tool{
		Name:        "base_tableList",
		InputSchema: objectSchema([]any{"database_name"}, "database_name"),
	}

	t.Run("valid", func(t *testing.T) {
		args := NewArguments().Set("database_name", "SALES")
		assert.NoError(t, ValidateArguments(tool, args))
	})

	t.Run("missing required", func(t *testing.T) {
		err := ValidateArguments(tool, NewArguments())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database_name")
	})

	t.Run("wrong type", func(t *testing.T) {
		args := NewArguments().Set("database_name", 42)
		assert.Error(t, ValidateArguments(tool, args))
	})

	t.Run("no schema validates trivially", func(t *testing.T) {
		assert.NoError(t, ValidateArguments(protocol.Tool{Name: "bare"}, NewArguments()))
	})
}
