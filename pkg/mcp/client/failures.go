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

// failureSignature identifies a (canonical tool, argument-key-set) pair.
// Values do not participate: two calls with the same keys and different
// values share a signature.
type failureSignature struct {
	tool string
	keys string
}

func signatureFor(tool string, args *Arguments) failureSignature {
	return failureSignature{tool: tool, keys: args.KeySet()}
}

// failureCache remembers signatures that failed with an invalid-parameters
// error so that known-bad invocations short-circuit without a network round
// trip. Entries live for the life of the client and are never evicted; tool
// catalogs are small and static within a session. A signature is recorded
// only after a live attempt returned invalid params, never speculatively.
//
// The cache is not synchronized; a Client must not be shared across
// goroutines (run one client per concurrent lane instead).
type failureCache struct {
	seen map[failureSignature]struct{}
}

func newFailureCache() *failureCache {
	return &failureCache{seen: map[failureSignature]struct{}{}}
}

func (c *failureCache) Seen(sig failureSignature) bool {
	_, ok := c.seen[sig]
	return ok
}

func (c *failureCache) Record(sig failureSignature) {
	c.seen[sig] = struct{}{}
}
