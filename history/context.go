package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Fixed markers emitted around rendered transcripts. Callers embedding a
// context block into a prompt rely on these exact strings.
const (
	contextHeader        = "=== Previous Conversation ===\n"
	contextFooter        = "\n=== End of Previous Conversation ===\n"
	truncationMarker     = "\n... (earlier messages truncated) ...\n"
	currentRequestHeader = "=== Current Request ==="
)

const (
	// maxMessageLength bounds the cost of any single long message in a
	// rendered transcript.
	maxMessageLength = 500

	// defaultContextMaxLength is the overall budget used when ContextOptions
	// leaves MaxLength unset.
	defaultContextMaxLength = 2000

	// llmContextMaxLength is the larger budget used when building a full
	// prompt for an LLM call.
	llmContextMaxLength = 3000

	// defaultIncludeLastN is how many recent messages a prompt carries when
	// the caller does not say.
	defaultIncludeLastN = 10
)

// ContextOptions controls transcript rendering.
//
// Messages are iterated in chronological order and emission stops once the
// cumulative budget would be exceeded, so when history outgrows MaxLength it
// is the newest messages that get dropped, not the oldest. That keeps the
// original recording behavior; callers wanting the most recent turns should
// bound Limit instead of relying on MaxLength.
type ContextOptions struct {
	// Limit, when positive, renders only the last Limit messages.
	Limit int
	// IncludeMetadata appends each message's metadata as indented JSON.
	IncludeMetadata bool
	// MaxLength is the cumulative character budget for message bodies;
	// defaults to 2000 when zero or negative. Header, footer and the
	// truncation marker are not counted against it.
	MaxLength int
}

// BuildContextString renders a bounded transcript of a session's history for
// inclusion in a prompt. A session with no messages, or an unknown id,
// yields an empty string: callers treat empty context as "no history
// available", never as an error.
func (m *Manager) BuildContextString(sessionID string, opts ContextOptions) string {
	msgs := m.Messages(sessionID, opts.Limit)
	if len(msgs) == 0 {
		return ""
	}

	maxLength := opts.MaxLength
	if maxLength <= 0 {
		maxLength = defaultContextMaxLength
	}

	var b strings.Builder
	b.WriteString(contextHeader)

	total := 0
	for _, msg := range msgs {
		label := "User"
		if msg.Role == RoleAssistant {
			label = "Assistant"
		}

		content := msg.Content
		if len(content) > maxMessageLength {
			// Back up to a rune boundary so the cut never splits a
			// multi-byte character.
			cut := maxMessageLength - 3
			for cut > 0 && !utf8.RuneStart(content[cut]) {
				cut--
			}
			content = content[:cut] + "..."
		}

		part := fmt.Sprintf("\n[%s]:\n%s\n", label, content)
		if opts.IncludeMetadata && len(msg.Metadata) > 0 {
			if meta, err := json.MarshalIndent(msg.Metadata, "", "  "); err == nil {
				part += fmt.Sprintf("Metadata: %s\n", meta)
			}
		}

		if total+len(part) > maxLength {
			b.WriteString(truncationMarker)
			break
		}
		b.WriteString(part)
		total += len(part)
	}

	b.WriteString(contextFooter)
	return b.String()
}

// BuildContextForLLM prefixes currentPrompt with a transcript of the last
// includeLastN messages, bounded by maxLength characters of message bodies.
// Zero or negative arguments use the defaults (10 messages, 3000
// characters). When the session has no history the prompt is returned
// verbatim: callers may rely on the no-history case behaving as if no
// context management were present at all.
func (m *Manager) BuildContextForLLM(sessionID, currentPrompt string, includeLastN, maxLength int) string {
	if includeLastN <= 0 {
		includeLastN = defaultIncludeLastN
	}
	if maxLength <= 0 {
		maxLength = llmContextMaxLength
	}

	context := m.BuildContextString(sessionID, ContextOptions{
		Limit:     includeLastN,
		MaxLength: maxLength,
	})
	if context == "" {
		return currentPrompt
	}
	return context + "\n\n" + currentRequestHeader + "\n" + currentPrompt
}
