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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentsOrder(t *testing.T) {
	args := NewArguments().
		Set("zeta", 1).
		Set("alpha", 2).
		Set("mid", 3)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, args.Keys())

	// Re-setting a key keeps its original position.
	args.Set("zeta", 9)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, args.Keys())
	v, ok := args.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestArgumentsNilReceiver(t *testing.T) {
	var args *Arguments
	assert.Equal(t, 0, args.Len())
	assert.Nil(t, args.Keys())
	assert.NotNil(t, args.Map())
	assert.Empty(t, args.KeySet())

	_, ok := args.Get("anything")
	assert.False(t, ok)

	clone := args.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, 0, clone.Len())
}

func TestArgumentsKeySet(t *testing.T) {
	a := NewArguments().Set("table_name", "t").Set("database_name", "d")
	b := NewArguments().Set("database_name", "x").Set("table_name", "y")

	// Sorted and value-independent.
	assert.Equal(t, "database_name,table_name", a.KeySet())
	assert.Equal(t, a.KeySet(), b.KeySet())
}

func TestArgumentsMarshalJSON(t *testing.T) {
	args := NewArguments().Set("b", 1).Set("a", 2)
	out, err := json.Marshal(args)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":2}`, string(out))

	empty, err := json.Marshal(NewArguments())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestArgumentsClone(t *testing.T) {
	args := NewArguments().Set("k", "v")
	clone := args.Clone()
	clone.Set("k", "changed").Set("extra", 1)

	v, _ := args.Get("k")
	assert.Equal(t, "v", v)
	assert.Equal(t, 1, args.Len())
	assert.Equal(t, 2, clone.Len())
}
