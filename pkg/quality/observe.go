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
package quality

var (
	nullCountKeys = []string{"null_count", "nullCount", "nulls", "missing_count", "missingCount"}
	nullPctKeys   = []string{"null_pct", "nullPct", "null_percentage", "nullPercentage"}
	distinctKeys  = []string{"distinct_count", "distinctCount", "distinct", "unique_count", "uniqueCount"}
	missingKeys   = []string{"missing_rows", "missingRows", "missing_row_count"}
	columnKeys    = []string{"column", "column_name", "columnName"}
	statKeys      = []string{"min", "max", "mean", "median", "mode", "stddev", "std", "avg", "sum", "count"}
)

// Observe merges one quality-tool response into the profile. The response
// shape varies by tool and server version, so extraction is the same kind
// of best-effort key-alias scan the discovery parser uses: metrics that
// cannot be attributed to a column are dropped rather than guessed.
func (p *TableProfile) Observe(tool string, raw map[string]any) {
	if raw == nil {
		return
	}

	base := raw
	if nested, ok := raw["result"].(map[string]any); ok {
		base = nested
	}
	payload, ok := base["content"].(map[string]any)
	if !ok {
		if payload, ok = base["data"].(map[string]any); !ok {
			payload = base
		}
	}

	column := columnName(raw, payload)
	if column == "" {
		return
	}
	c := p.Column(column)

	for _, k := range nullCountKeys {
		if n, ok := asInt(payload[k]); ok {
			c.NullCount = &n
			break
		}
	}
	for _, k := range nullPctKeys {
		if f, ok := asFloat(payload[k]); ok {
			c.NullPct = &f
			break
		}
	}
	for _, k := range distinctKeys {
		if n, ok := asInt(payload[k]); ok {
			c.DistinctCount = &n
			break
		}
	}
	for _, k := range missingKeys {
		if n, ok := asInt(payload[k]); ok {
			c.MissingRows = &n
			break
		}
	}
	for _, k := range statKeys {
		if v, ok := payload[k]; ok {
			c.Stats[k] = v
		}
	}
}

// columnName resolves the column a response refers to: an explicit column
// field in the payload wins, else the invoker's _args annotation.
func columnName(raw, payload map[string]any) string {
	for _, k := range columnKeys {
		if s, ok := payload[k].(string); ok && s != "" {
			return s
		}
	}
	args, ok := raw["_args"].(map[string]any)
	if !ok {
		return ""
	}
	for _, k := range columnKeys {
		if s, ok := args[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
