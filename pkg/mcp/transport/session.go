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
// Package transport implements session management for the MCP HTTP transport.
package transport

import (
	"fmt"
	"sync"
)

// SessionHeader is the header carrying the server-issued session token.
// Once observed on a response it is replayed on every subsequent request.
const SessionHeader = "Mcp-Session-Id"

// SessionManager holds the session-affinity token for one client instance.
// Per the MCP spec, session IDs consist only of visible ASCII characters
// (0x21 to 0x7E). The token never expires client-side; the server decides
// validity.
type SessionManager struct {
	sessionID string
	mu        sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// SetSessionID stores or replaces the session ID from the server's
// Mcp-Session-Id response header.
func (s *SessionManager) SetSessionID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range id {
		if c < 0x21 || c > 0x7E {
			return fmt.Errorf("invalid session ID: contains non-ASCII or invisible characters")
		}
	}

	s.sessionID = id
	return nil
}

// GetSessionID returns the current session ID, empty if none was issued yet.
func (s *SessionManager) GetSessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// HasSession returns true if a session ID is set.
func (s *SessionManager) HasSession() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID != ""
}

// ClearSession clears the session ID (after the server reports it expired).
func (s *SessionManager) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = ""
}
