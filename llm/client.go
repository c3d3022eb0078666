package llm

import (
	"context"
	"fmt"

	"github.com/prospector-hq/prospector/history"
	"github.com/prospector-hq/prospector/internal/jsonx"
)

// Client is a thin convenience wrapper around a Provider for one-shot calls.
type Client struct {
	provider Provider
}

// NewClient wraps a provider.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// Ask sends a single user prompt with an optional system prompt and returns
// the text response.
func (c *Client) Ask(ctx context.Context, systemPrompt, prompt string) (string, error) {
	messages := make([]ChatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, SystemMessage(systemPrompt))
	}
	messages = append(messages, UserMessage(prompt))

	resp, err := c.provider.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// HistoryClient binds a provider to a session history manager. Every Ask
// threads prior conversation into the prompt and records the exchange.
type HistoryClient struct {
	client    *Client
	history   *history.Manager
	window    int
	maxLength int
}

// NewHistoryClient creates a history-aware client. window is the number of
// recent messages folded into each prompt and maxLength the character budget
// for the folded transcript; 0 uses the defaults.
func NewHistoryClient(provider Provider, manager *history.Manager, window, maxLength int) *HistoryClient {
	return &HistoryClient{
		client:    NewClient(provider),
		history:   manager,
		window:    window,
		maxLength: maxLength,
	}
}

// History returns the underlying session manager.
func (hc *HistoryClient) History() *history.Manager {
	return hc.history
}

// Provider returns the underlying provider.
func (hc *HistoryClient) Provider() Provider {
	return hc.client.provider
}

// Ask sends a prompt with conversation context from the session and records
// both the prompt and the response in the session.
func (hc *HistoryClient) Ask(ctx context.Context, sessionID, systemPrompt, prompt string) (string, error) {
	contextual := hc.history.BuildContextForLLM(sessionID, prompt, hc.window, hc.maxLength)

	answer, err := hc.client.Ask(ctx, systemPrompt, contextual)
	if err != nil {
		return "", err
	}

	hc.history.AddExchange(sessionID, prompt, answer, nil, nil)
	return answer, nil
}

// AskEphemeral sends a prompt with conversation context but does not record
// the exchange. Useful for meta-queries about the conversation itself.
func (hc *HistoryClient) AskEphemeral(ctx context.Context, sessionID, systemPrompt, prompt string) (string, error) {
	contextual := hc.history.BuildContextForLLM(sessionID, prompt, hc.window, hc.maxLength)
	return hc.client.Ask(ctx, systemPrompt, contextual)
}

// AskStructured sends a prompt expecting a JSON response matching T. The
// provider is asked for JSON output and the response is decoded with fence
// stripping and balanced-brace extraction. Nothing is recorded in history;
// callers that want the exchange kept should record the typed value with
// history.AddStructuredExchange.
func AskStructured[T any](ctx context.Context, provider Provider, systemPrompt, prompt string) (T, error) {
	var zero T

	messages := make([]ChatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, SystemMessage(systemPrompt))
	}
	messages = append(messages, UserMessage(prompt))

	resp, err := provider.ChatWithFormat(ctx, messages, JSONFormat())
	if err != nil {
		return zero, err
	}

	out, err := jsonx.Extract[T](resp.Content)
	if err != nil {
		return zero, fmt.Errorf("%s response: %w", provider.Name(), err)
	}
	return out, nil
}

// AskStructuredWithHistory is AskStructured with the session's recent turns
// folded into the prompt, so the model can refer back to the conversation.
// An unknown or empty session yields a context-free prompt. Nothing is
// recorded in history.
func AskStructuredWithHistory[T any](ctx context.Context, hc *HistoryClient, sessionID, systemPrompt, prompt string) (T, error) {
	contextual := hc.history.BuildContextForLLM(sessionID, prompt, hc.window, hc.maxLength)
	return AskStructured[T](ctx, hc.Provider(), systemPrompt, contextual)
}
