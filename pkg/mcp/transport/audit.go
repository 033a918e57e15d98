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
package transport

import "go.uber.org/zap"

// Auditor observes every outbound request payload and raw inbound response
// body. Implementations must not mutate the byte slices.
type Auditor interface {
	Request(payload []byte)
	Response(body []byte)
}

// NopAuditor discards all frames.
type NopAuditor struct{}

func (NopAuditor) Request([]byte)  {}
func (NopAuditor) Response([]byte) {}

// ZapAuditor logs full request/response frames for transparency. Frames are
// logged verbatim, including bodies that later fail to decode.
type ZapAuditor struct {
	logger *zap.Logger
}

// NewZapAuditor creates an auditor writing to the given logger.
func NewZapAuditor(logger *zap.Logger) *ZapAuditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapAuditor{logger: logger}
}

func (a *ZapAuditor) Request(payload []byte) {
	a.logger.Info("mcp-client => mcp-server", zap.ByteString("frame", payload))
}

func (a *ZapAuditor) Response(body []byte) {
	a.logger.Info("mcp-client <= mcp-server", zap.ByteString("frame", body))
}
