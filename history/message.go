// Package history provides in-memory conversation session management for
// interview sessions: message storage, context building for LLM prompts, and
// JSON export/import.
//
// Information Hiding:
// - Session map and ordering structure hidden behind Manager
// - Thread-safe access via RWMutex hidden from callers
// - Callers reference sessions by id only; returned values are copies

package history

import (
	"fmt"
	"time"
)

// Role identifies the author of a message. Only user and assistant
// messages are recorded; system prompts are not part of session history.
type Role string

const (
	// RoleUser is a message from the candidate.
	RoleUser Role = "user"
	// RoleAssistant is a message from the interviewer side (LLM output).
	RoleAssistant Role = "assistant"
)

// InvalidRoleError is returned when a message append names a role outside
// {user, assistant}. The failed append leaves the session untouched.
type InvalidRoleError struct {
	Role string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid role %q: must be %q or %q", e.Role, RoleUser, RoleAssistant)
}

// Metadata is an open key-value mapping attached to messages and sessions.
// Values must be JSON-serializable; everything that goes through export and
// import survives as the standard encoding/json value set (string, float64,
// bool, nil, []any, map[string]any).
type Metadata map[string]any

// Clone returns an independent shallow copy. A nil receiver yields an empty
// (non-nil) Metadata so appends always store a usable map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Message is one recorded conversational turn. Messages are append-only:
// once stored in a session they are never mutated or removed individually.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  Metadata  `json:"metadata,omitempty"`
}

// Session is an ordered, append-only sequence of messages plus identity and
// lifecycle data. Session ids are caller-supplied, never generated here.
type Session struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	Metadata  Metadata  `json:"metadata,omitempty"`
}

// clone returns a deep-enough copy for handing to callers: the message slice
// is copied so appends on the stored session never alias caller state.
func (s *Session) clone() Session {
	out := Session{
		SessionID: s.SessionID,
		CreatedAt: s.CreatedAt,
		Metadata:  s.Metadata.Clone(),
		Messages:  make([]Message, len(s.Messages)),
	}
	copy(out.Messages, s.Messages)
	return out
}

// Structured is implemented by typed LLM responses (resume extractions,
// question sets, evaluations) that can be recorded as the assistant half of
// an exchange. Callers with plain text use AddExchange instead; the two
// entry points replace any runtime type inspection.
type Structured interface {
	// TypeName returns a stable name for the concrete type, recorded in the
	// assistant message metadata.
	TypeName() string
}
