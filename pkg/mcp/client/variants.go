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

// variantCap bounds the case-variant cartesian expansion (2^k for k keys)
// so that tools with many parameters cannot trigger an unbounded search.
const variantCap = 10

// genericAliases maps argument keys to the generic spellings some server
// versions expect instead.
var genericAliases = map[string]string{
	"database_name": "database",
	"table_name":    "table",
	"column_name":   "column",
}

// Variants produces the bounded sequence of alternative argument spellings
// tried after an invalid-parameters error. Generic-alias sets come first,
// then the snake/camel cartesian expansion; the whole sequence is
// deterministic for a given argument set.
func (a *Arguments) Variants() []*Arguments {
	if a.Len() == 0 {
		return []*Arguments{NewArguments()}
	}
	variants := a.aliasVariants()
	return append(variants, a.caseVariants()...)
}

// aliasVariants returns the alternate set with every aliasable key replaced
// by its generic spelling, when at least one key has an alias. Keys are
// hyphen-normalized before the lookup so database-name widens the same way
// database_name does.
func (a *Arguments) aliasVariants() []*Arguments {
	replaced := false
	out := NewArguments()
	for _, k := range a.keys {
		alias, ok := genericAliases[strings.ReplaceAll(k, "-", "_")]
		if ok {
			replaced = true
			out.Set(alias, a.vals[k])
		} else {
			out.Set(k, a.vals[k])
		}
	}
	if !replaced {
		return nil
	}
	return []*Arguments{out}
}

// caseVariants expands each key into its candidate spellings (snake first,
// then camelCase) and walks the cartesian product in depth-first order over
// the keys' insertion order, capped at variantCap combinations. Values are
// carried over unchanged; only keys are respelled.
func (a *Arguments) caseVariants() []*Arguments {
	candidates := make([][]string, len(a.keys))
	for i, k := range a.keys {
		candidates[i] = keyVariants(k)
	}

	var out []*Arguments
	current := NewArguments()
	var walk func(i int)
	walk = func(i int) {
		if len(out) >= variantCap {
			return
		}
		if i == len(a.keys) {
			out = append(out, current.Clone())
			return
		}
		for _, spelled := range candidates[i] {
			next := current.Clone().Set(spelled, a.vals[a.keys[i]])
			prev := current
			current = next
			walk(i + 1)
			current = prev
			if len(out) >= variantCap {
				return
			}
		}
	}
	walk(0)
	return out
}

// keyVariants returns the candidate spellings for one key: the
// hyphen-normalized snake form, then the camelCase form when it differs.
func keyVariants(key string) []string {
	snake := strings.ReplaceAll(key, "-", "_")
	camel := camelCase(snake)
	if camel == snake {
		return []string{snake}
	}
	return []string{snake, camel}
}

// camelCase converts an underscore-delimited key to camelCase: first
// segment lowercase as-is, subsequent segments capitalized.
func camelCase(key string) string {
	parts := strings.Split(key, "_")
	if len(parts) < 2 {
		return key
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
