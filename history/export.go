package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
)

// ExportSession returns a copy of one session suitable for JSON
// serialization, or false if the session does not exist.
func (m *Manager) ExportSession(sessionID string) (Session, bool) {
	return m.GetSession(sessionID)
}

// ExportAllSessions returns copies of every session keyed by id.
func (m *Manager) ExportAllSessions() map[string]Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]Session, len(m.sessions))
	for id, s := range m.sessions {
		out[id] = s.clone()
	}
	return out
}

// ImportSession reconstructs a session from exported data, replacing any
// stored session with the same id. Malformed input is reported via the log
// and a false return; the store is left unchanged for that session.
func (m *Manager) ImportSession(s Session) bool {
	if err := validateImport(s); err != nil {
		log.Warn().Err(err).Str("session_id", s.SessionID).Msg("Rejecting session import")
		return false
	}

	copied := s.clone()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.SessionID]; !exists {
		m.order = append(m.order, s.SessionID)
	}
	m.sessions[s.SessionID] = &copied
	return true
}

func validateImport(s Session) error {
	if s.SessionID == "" {
		return fmt.Errorf("missing session_id")
	}
	if s.CreatedAt.IsZero() {
		return fmt.Errorf("missing created_at")
	}
	for i, msg := range s.Messages {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			return fmt.Errorf("message %d: %w", i, &InvalidRoleError{Role: string(msg.Role)})
		}
	}
	return nil
}

// SaveToFile writes every session to path as indented JSON. File-system
// errors propagate to the caller.
func (m *Manager) SaveToFile(path string) error {
	data, err := json.MarshalIndent(m.ExportAllSessions(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// LoadFromFile reads a session export file and imports each session.
// Individual malformed sessions are skipped with a log entry; an unreadable
// or unparseable file is an error.
func (m *Manager) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}

	var sessions map[string]Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return fmt.Errorf("parse session file: %w", err)
	}

	// Sorted iteration keeps insertion order reproducible across loads.
	ids := make([]string, 0, len(sessions))
	for id := range sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	imported := 0
	for _, id := range ids {
		if m.ImportSession(sessions[id]) {
			imported++
		}
	}

	log.Debug().Int("imported", imported).Int("total", len(sessions)).Str("path", path).
		Msg("Loaded session history")
	return nil
}
