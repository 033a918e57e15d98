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
	"context"

	"github.com/teradata-labs/tdq/pkg/mcp/protocol"
	"go.uber.org/zap"
)

const suppressedMessage = "suppressed cached invalid params"

// CallTool invokes a tool with adaptive naming and argument negotiation:
//
//  1. Canonicalize the tool name.
//  2. Short-circuit if the (tool, key-set) signature previously failed with
//     invalid params: a synthetic suppressed error is returned without wire
//     traffic.
//  3. Attempt the call directly; any result other than an invalid-parameters
//     error is returned as-is.
//  4. Otherwise try argument-spelling variants in their deterministic
//     order, recording each failed signature, until one succeeds.
//  5. If all variants exhaust, record the original signature and return the
//     last response obtained.
//
// The server's parameter contract is not reliably discoverable ahead of
// time and every attempt costs a round trip; memoization keeps repeated tools
// in a multi-table workflow from re-paying the discovery cost once a shape
// is known to fail. Transport failures abort negotiation immediately and
// are never memoized.
//
// Successful (and final-failure) responses are annotated with the canonical
// tool name under "_tool" and the argument set actually used under "_args";
// callers need both for audit and for feeding the discovery parser.
func (c *Client) CallTool(ctx context.Context, tool string, args *Arguments) (Response, error) {
	canonical := CanonicalToolName(tool)
	sig := signatureFor(canonical, args)

	if c.failures.Seen(sig) {
		c.logger.Debug("Suppressing cached invalid-params call",
			zap.String("tool", canonical),
			zap.String("keys", sig.keys))
		return Response{
			"error": map[string]any{
				"code":    float64(protocol.InvalidParams),
				"message": suppressedMessage,
			},
			"tool": canonical,
		}, nil
	}

	resp, err := c.callToolOnce(ctx, canonical, args)
	if err != nil {
		return nil, err
	}
	if !resp.IsInvalidParams() {
		return annotate(resp, canonical, args), nil
	}

	tried := map[failureSignature]bool{sig: true}
	last := resp
	lastArgs := args
	for _, variant := range args.Variants() {
		vsig := signatureFor(canonical, variant)
		if tried[vsig] || c.failures.Seen(vsig) {
			continue
		}
		tried[vsig] = true

		vresp, err := c.callToolOnce(ctx, canonical, variant)
		if err != nil {
			return nil, err
		}
		if !vresp.IsInvalidParams() {
			c.logger.Debug("Argument variant accepted",
				zap.String("tool", canonical),
				zap.Strings("keys", variant.Keys()))
			return annotate(vresp, canonical, variant), nil
		}
		c.failures.Record(vsig)
		last = vresp
		lastArgs = variant
	}

	c.failures.Record(sig)
	return annotate(last, canonical, lastArgs), nil
}

func (c *Client) callToolOnce(ctx context.Context, canonical string, args *Arguments) (Response, error) {
	return c.Call(ctx, "tools/call", protocol.CallToolParams{
		Name:      canonical,
		Arguments: args.Map(),
	})
}

func annotate(resp Response, canonical string, args *Arguments) Response {
	resp["_tool"] = canonical
	resp["_args"] = args.Map()
	return resp
}
