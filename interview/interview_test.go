package interview

import (
	"context"

	"github.com/prospector-hq/prospector/llm"
)

// scriptedProvider replays canned JSON responses in order. Interview
// components only use ChatWithFormat, so Chat and StreamChat are minimal.
type scriptedProvider struct {
	replies []string
	calls   int
	prompts []string
}

func (s *scriptedProvider) Name() string  { return "scripted" }
func (s *scriptedProvider) Model() string { return "scripted-1" }

func (s *scriptedProvider) Chat(_ context.Context, messages []llm.ChatMessage) (llm.Response, error) {
	return s.next(messages)
}

func (s *scriptedProvider) ChatWithFormat(_ context.Context, messages []llm.ChatMessage, _ *llm.ResponseFormat) (llm.Response, error) {
	return s.next(messages)
}

func (s *scriptedProvider) StreamChat(_ context.Context, messages []llm.ChatMessage, chunks chan<- string) (*llm.TokenUsage, error) {
	resp, err := s.next(messages)
	if err != nil {
		return nil, err
	}
	chunks <- resp.Content
	return &llm.TokenUsage{}, nil
}

func (s *scriptedProvider) next(messages []llm.ChatMessage) (llm.Response, error) {
	s.prompts = append(s.prompts, messages[len(messages)-1].Content)
	reply := s.replies[s.calls%len(s.replies)]
	s.calls++
	return llm.Response{Content: reply}, nil
}
