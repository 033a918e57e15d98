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
	"github.com/teradata-labs/tdq/pkg/mcp/protocol"
)

// Response is the generic decoded JSON-RPC response. Server payloads vary
// structurally by tool and version, so the response stays a free-form map;
// accessors below interpret the common shapes. An empty Response means the
// transport could not decode a usable body.
type Response map[string]any

// Err returns the JSON-RPC error carried by the response, or nil.
func (r Response) Err() *protocol.Error {
	errVal, ok := r["error"].(map[string]any)
	if !ok {
		return nil
	}
	e := &protocol.Error{}
	switch code := errVal["code"].(type) {
	case float64:
		e.Code = int(code)
	case int:
		e.Code = code
	}
	if msg, ok := errVal["message"].(string); ok {
		e.Message = msg
	}
	return e
}

// IsInvalidParams reports whether the response carries the one error class
// subject to adaptive retry and memoization.
func (r Response) IsInvalidParams() bool {
	err := r.Err()
	return err != nil && err.Code == protocol.InvalidParams
}

// Result returns the nested result mapping, or nil when absent or not a
// mapping.
func (r Response) Result() map[string]any {
	result, _ := r["result"].(map[string]any)
	return result
}

// Tool returns the canonical tool name annotation set by CallTool.
func (r Response) Tool() string {
	if tool, ok := r["_tool"].(string); ok {
		return tool
	}
	tool, _ := r["tool"].(string)
	return tool
}

// Args returns the argument set annotation set by CallTool.
func (r Response) Args() map[string]any {
	args, _ := r["_args"].(map[string]any)
	return args
}
