// Package llm provides the LLM provider abstraction used by the interview
// pipeline: a small chat interface with pluggable backends for OpenAI,
// Anthropic, Google Gemini, and DeepSeek.
package llm

// ChatMessage is a role-tagged message sent to a provider.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage creates a system message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: "system", Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: "assistant", Content: content}
}

// Response is a completed chat response.
type Response struct {
	Content string
	Usage   *TokenUsage
}

// TokenUsage contains token usage statistics for one call.
type TokenUsage struct {
	PromptTokens     uint32
	CompletionTokens uint32
	TotalTokens      uint32
}

// ResponseFormatType selects how the provider should shape its output.
type ResponseFormatType string

const (
	// ResponseFormatText is plain text output (the default).
	ResponseFormatText ResponseFormatType = "text"
	// ResponseFormatJSONObject requests a single JSON object, used for all
	// structured extraction (resumes, question sets, evaluations).
	ResponseFormatJSONObject ResponseFormatType = "json_object"
)

// ResponseFormat specifies the requested output shape.
type ResponseFormat struct {
	Type ResponseFormatType `json:"type"`
}

// JSONFormat is the format value requesting a JSON object response.
func JSONFormat() *ResponseFormat {
	return &ResponseFormat{Type: ResponseFormatJSONObject}
}
