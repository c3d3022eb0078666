package history

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContextStringEmpty(t *testing.T) {
	m := NewManager()

	assert.Equal(t, "", m.BuildContextString("unknown", ContextOptions{}))

	m.CreateSession("empty", nil)
	assert.Equal(t, "", m.BuildContextString("empty", ContextOptions{}))
}

func TestBuildContextStringMarkers(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddUserMessage("s1", "Hello", nil))
	require.NoError(t, m.AddAssistantMessage("s1", "Hi there", nil))

	out := m.BuildContextString("s1", ContextOptions{})

	assert.True(t, strings.HasPrefix(out, "=== Previous Conversation ==="))
	assert.True(t, strings.HasSuffix(out, "=== End of Previous Conversation ===\n"))
	assert.Contains(t, out, "[User]:\nHello")
	assert.Contains(t, out, "[Assistant]:\nHi there")

	header := strings.Index(out, "Hello")
	footer := strings.Index(out, "Hi there")
	assert.Less(t, header, footer, "messages render in chronological order")
}

func TestBuildContextStringLongMessageCapped(t *testing.T) {
	m := NewManager()
	long := strings.Repeat("x", 800)
	require.NoError(t, m.AddUserMessage("s1", long, nil))

	out := m.BuildContextString("s1", ContextOptions{MaxLength: 5000})

	assert.NotContains(t, out, long)
	assert.Contains(t, out, strings.Repeat("x", 497)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 498))
}

func TestBuildContextStringCapKeepsValidUTF8(t *testing.T) {
	m := NewManager()
	long := strings.Repeat("a", 496) + strings.Repeat("é", 10)
	require.NoError(t, m.AddUserMessage("s1", long, nil))

	out := m.BuildContextString("s1", ContextOptions{MaxLength: 5000})

	assert.True(t, utf8.ValidString(out), "cap must cut on a rune boundary:\n%q", out)
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, long)
}

func TestBuildContextStringCapAllMultibyte(t *testing.T) {
	m := NewManager()
	long := strings.Repeat("世", 300)
	require.NoError(t, m.AddUserMessage("s1", long, nil))

	out := m.BuildContextString("s1", ContextOptions{MaxLength: 5000})

	assert.True(t, utf8.ValidString(out))
	assert.NotContains(t, out, long)
}

func TestBuildContextStringBudgetStopsAtTail(t *testing.T) {
	m := NewManager()
	for i := 0; i < 10; i++ {
		require.NoError(t, m.AddUserMessage("s1", strings.Repeat("a", 400), nil))
	}

	out := m.BuildContextString("s1", ContextOptions{MaxLength: 900})

	assert.Contains(t, out, "... (earlier messages truncated) ...")
	assert.True(t, strings.HasSuffix(out, "=== End of Previous Conversation ===\n"),
		"footer is emitted even when the budget stops iteration")

	// Budget plus fixed marker overhead bounds the output.
	overhead := len(contextHeader) + len(contextFooter) + len(truncationMarker)
	assert.LessOrEqual(t, len(out), 900+overhead)
}

func TestBuildContextStringKeepsOldest(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddUserMessage("s1", "OLDEST "+strings.Repeat("a", 300), nil))
	require.NoError(t, m.AddUserMessage("s1", "MIDDLE "+strings.Repeat("b", 300), nil))
	require.NoError(t, m.AddUserMessage("s1", "NEWEST "+strings.Repeat("c", 300), nil))

	out := m.BuildContextString("s1", ContextOptions{MaxLength: 700})

	assert.Contains(t, out, "OLDEST")
	assert.Contains(t, out, "MIDDLE")
	assert.NotContains(t, out, "NEWEST", "the positional stop drops the newest messages")
}

func TestBuildContextStringIncludeMetadata(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddUserMessage("s1", "Hello", Metadata{"question_id": 4}))

	plain := m.BuildContextString("s1", ContextOptions{})
	assert.NotContains(t, plain, "Metadata:")

	withMeta := m.BuildContextString("s1", ContextOptions{IncludeMetadata: true})
	assert.Contains(t, withMeta, "Metadata:")
	assert.Contains(t, withMeta, "question_id")
}

func TestBuildContextStringLimit(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddUserMessage("s1", "ancient", nil))
	require.NoError(t, m.AddUserMessage("s1", "recent-1", nil))
	require.NoError(t, m.AddUserMessage("s1", "recent-2", nil))

	out := m.BuildContextString("s1", ContextOptions{Limit: 2})

	assert.NotContains(t, out, "ancient")
	assert.Contains(t, out, "recent-1")
	assert.Contains(t, out, "recent-2")
}

func TestBuildContextForLLMNoHistory(t *testing.T) {
	m := NewManager()

	prompt := "Generate a follow-up question."
	assert.Equal(t, prompt, m.BuildContextForLLM("unknown", prompt, 5, 0),
		"no history must return the prompt unchanged")
}

func TestBuildContextForLLMPrefixesContext(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddUserMessage("s1", "Hello", nil))
	require.NoError(t, m.AddAssistantMessage("s1", "Hi there", nil))

	prompt := "Evaluate the last answer."
	out := m.BuildContextForLLM("s1", prompt, 5, 0)

	assert.Contains(t, out, "=== Previous Conversation ===")
	assert.Contains(t, out, "=== Current Request ===")
	assert.True(t, strings.HasSuffix(out, prompt))

	request := strings.Index(out, "=== Current Request ===")
	footer := strings.Index(out, "=== End of Previous Conversation ===")
	assert.Less(t, footer, request)
}

func TestBuildContextForLLMHonorsBudget(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddUserMessage("s1", "OLDEST "+strings.Repeat("a", 200), nil))
	require.NoError(t, m.AddUserMessage("s1", "NEWEST "+strings.Repeat("b", 200), nil))

	out := m.BuildContextForLLM("s1", "next", 5, 220)

	assert.Contains(t, out, "OLDEST")
	assert.NotContains(t, out, "NEWEST", "a small budget drops the newest turn")
	assert.Contains(t, out, "... (earlier messages truncated) ...")
}
