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
	"fmt"
	"os"
	"strings"

	"github.com/teradata-labs/tdq/pkg/mcp/protocol"
	"github.com/xeipuuv/gojsonschema"
)

// ArgumentsFromSchema filters proposed arguments down to the properties the
// tool's input schema declares and fills missing required keys from
// same-named (upper-cased) environment variables. Tools without a usable
// object schema accept the proposal unchanged.
func ArgumentsFromSchema(tool protocol.Tool, proposed *Arguments) *Arguments {
	schema := tool.InputSchema
	props, _ := schema["properties"].(map[string]any)
	if t, _ := schema["type"].(string); t != "object" {
		props = nil
	}

	args := NewArguments()
	for _, k := range proposed.Keys() {
		if props == nil {
			v, _ := proposed.Get(k)
			args.Set(k, v)
			continue
		}
		if _, ok := props[k]; ok {
			v, _ := proposed.Get(k)
			args.Set(k, v)
		}
	}

	required, _ := schema["required"].([]any)
	for _, r := range required {
		key, ok := r.(string)
		if !ok {
			continue
		}
		if _, ok := args.Get(key); ok {
			continue
		}
		if v, ok := os.LookupEnv(strings.ToUpper(key)); ok {
			args.Set(key, v)
		}
	}
	return args
}

// ValidateArguments checks an argument set against the tool's declared
// input schema. Tools without a schema validate trivially.
func ValidateArguments(tool protocol.Tool, args *Arguments) error {
	if len(tool.InputSchema) == 0 {
		return nil
	}
	schemaLoader := gojsonschema.NewGoLoader(tool.InputSchema)
	docLoader := gojsonschema.NewGoLoader(args.Map())

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", tool.Name, err)
	}
	if !result.Valid() {
		descs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			descs = append(descs, e.String())
		}
		return fmt.Errorf("arguments rejected by %s schema: %s", tool.Name, strings.Join(descs, "; "))
	}
	return nil
}
