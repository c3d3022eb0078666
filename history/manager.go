package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Manager owns the mapping from session id to session and is its sole
// mutator. One Manager is constructed at process start and passed explicitly
// to every component that needs conversation context.
//
// All operations are safe for concurrent use. Within one session, messages
// are observed in strict append order by all readers.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string // session ids in insertion order, for stable listing
}

// NewManager creates an empty history manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// CreateSession creates a session with the given id and metadata. If the id
// already exists the stored session is returned unchanged; metadata is never
// overwritten.
func (m *Manager) CreateSession(sessionID string, metadata Metadata) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureSessionLocked(sessionID, metadata).clone()
}

// ensureSessionLocked returns the stored session for id, creating it first
// if absent. Caller must hold mu.
func (m *Manager) ensureSessionLocked(sessionID string, metadata Metadata) *Session {
	if s, ok := m.sessions[sessionID]; ok {
		return s
	}
	s := &Session{
		SessionID: sessionID,
		CreatedAt: time.Now(),
		Metadata:  metadata.Clone(),
	}
	m.sessions[sessionID] = s
	m.order = append(m.order, sessionID)
	return s
}

// GetSession returns a copy of the session, or false if it does not exist.
// Lookup never creates.
func (m *Manager) GetSession(sessionID string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

// DeleteSession removes a session, reporting whether a removal occurred.
func (m *Manager) DeleteSession(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return false
	}
	delete(m.sessions, sessionID)
	for i, id := range m.order {
		if id == sessionID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// ClearAll removes every session.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = make(map[string]*Session)
	m.order = nil
}

// ListSessions returns all session ids in insertion order.
func (m *Manager) ListSessions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// AddMessage appends a message to a session, creating the session if it does
// not exist. The role is lowercased before validation; anything other than
// user or assistant fails with *InvalidRoleError and leaves no partial state.
func (m *Manager) AddMessage(sessionID string, role Role, content string, metadata Metadata) error {
	normalized := Role(strings.ToLower(string(role)))
	if normalized != RoleUser && normalized != RoleAssistant {
		return &InvalidRoleError{Role: string(role)}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensureSessionLocked(sessionID, nil)
	s.Messages = append(s.Messages, Message{
		Role:      normalized,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  metadata.Clone(),
	})
	return nil
}

// AddUserMessage appends a user message.
func (m *Manager) AddUserMessage(sessionID, content string, metadata Metadata) error {
	return m.AddMessage(sessionID, RoleUser, content, metadata)
}

// AddAssistantMessage appends an assistant message.
func (m *Manager) AddAssistantMessage(sessionID, content string, metadata Metadata) error {
	return m.AddMessage(sessionID, RoleAssistant, content, metadata)
}

// AddExchange appends a user message followed by an assistant message as one
// logical unit. Both messages land under a single lock acquisition, so no
// reader observes the pair half-recorded.
func (m *Manager) AddExchange(sessionID, userContent, assistantContent string, userMeta, assistantMeta Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensureSessionLocked(sessionID, nil)
	s.Messages = append(s.Messages,
		Message{
			Role:      RoleUser,
			Content:   userContent,
			Timestamp: time.Now(),
			Metadata:  userMeta.Clone(),
		},
		Message{
			Role:      RoleAssistant,
			Content:   assistantContent,
			Timestamp: time.Now(),
			Metadata:  assistantMeta.Clone(),
		},
	)
}

// AddStructuredExchange records a question/answer pair where the assistant
// half is a typed response. The response is serialized to indented JSON and
// the assistant metadata is augmented with a structured marker and the
// response type name. Serialization happens before either message is
// appended, so a failure leaves the session untouched.
func (m *Manager) AddStructuredExchange(sessionID, userContent string, response Structured, userMeta, assistantMeta Metadata) error {
	payload, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s response: %w", response.TypeName(), err)
	}

	meta := assistantMeta.Clone()
	meta["structured"] = true
	meta["response_type"] = response.TypeName()

	m.AddExchange(sessionID, userContent, string(payload), userMeta, meta)
	return nil
}

// Messages returns messages from a session in append order. A positive limit
// returns only the last limit messages. Unknown sessions yield nil.
func (m *Manager) Messages(sessionID string, limit int) []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}

	msgs := s.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// MessageCount returns the number of messages in a session; zero for
// unknown sessions.
func (m *Manager) MessageCount(sessionID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return 0
	}
	return len(s.Messages)
}

// LastMessage returns the most recent message in a session, or false when
// the session is empty or unknown.
func (m *Manager) LastMessage(sessionID string) (Message, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok || len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
