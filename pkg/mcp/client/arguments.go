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
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Arguments is an ordered mapping from argument key to value. Key order is
// the insertion order, which keeps the variant attempt sequence deterministic
// across runs. A nil *Arguments behaves as an empty set.
type Arguments struct {
	keys []string
	vals map[string]any
}

// NewArguments creates an empty argument set.
func NewArguments() *Arguments {
	return &Arguments{vals: map[string]any{}}
}

// Set stores a value under key, appending the key on first use. Returns the
// receiver for chaining.
func (a *Arguments) Set(key string, value any) *Arguments {
	if _, ok := a.vals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.vals[key] = value
	return a
}

// Get returns the value stored under key.
func (a *Arguments) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.vals[key]
	return v, ok
}

// Len returns the number of keys.
func (a *Arguments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns the keys in insertion order.
func (a *Arguments) Keys() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Map returns the arguments as a plain map for wire encoding. The result is
// never nil so that an empty set serializes as {} rather than null.
func (a *Arguments) Map() map[string]any {
	out := map[string]any{}
	if a == nil {
		return out
	}
	for k, v := range a.vals {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy preserving key order.
func (a *Arguments) Clone() *Arguments {
	out := NewArguments()
	if a == nil {
		return out
	}
	for _, k := range a.keys {
		out.Set(k, a.vals[k])
	}
	return out
}

// KeySet returns a canonical representation of the key set (sorted,
// comma-joined). Two argument sets are equivalent for failure caching when
// their KeySet values match, regardless of values.
func (a *Arguments) KeySet() string {
	if a == nil || len(a.keys) == 0 {
		return ""
	}
	sorted := make([]string, len(a.keys))
	copy(sorted, a.keys)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// MarshalJSON encodes the arguments as a JSON object in insertion order.
func (a *Arguments) MarshalJSON() ([]byte, error) {
	if a == nil || len(a.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		valJSON, err := json.Marshal(a.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
