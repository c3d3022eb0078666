// LLM Provider interface - the abstract interface for chat backends.
// Each implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling

package llm

import "context"

// Provider is the abstract interface for chat completion backends.
type Provider interface {
	// Name returns the provider name (for logging).
	Name() string

	// Model returns the model in use.
	Model() string

	// Chat sends a chat completion request.
	Chat(ctx context.Context, messages []ChatMessage) (Response, error)

	// ChatWithFormat sends a chat completion request with a response format.
	// Providers without a native JSON mode fall back to prompt instruction.
	ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (Response, error)

	// StreamChat streams a completion, sending text chunks to the channel as
	// they arrive. Used to feed question playback as text is produced.
	// Returns token usage when the provider reports it.
	StreamChat(ctx context.Context, messages []ChatMessage, chunks chan<- string) (*TokenUsage, error)
}
