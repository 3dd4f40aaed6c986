package provider

import (
	"context"
)

// StubProvider is a scripted provider for tests. Chat replays queued
// replies in order; Embed returns a fixed per-text vector when one is
// registered, otherwise a deterministic vector derived from the text.
type StubProvider struct {
	Replies    []string
	Embeddings map[string][]float32

	// ChatCalls records every prompt batch for assertions.
	ChatCalls [][]Message
}

func NewStubProvider(replies ...string) *StubProvider {
	return &StubProvider{
		Replies:    replies,
		Embeddings: map[string][]float32{},
	}
}

func (m *StubProvider) Chat(ctx context.Context, messages []Message) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.ChatCalls = append(m.ChatCalls, messages)

	if len(m.Replies) == 0 {
		return &Response{Content: "Stay on the path.", Usage: Usage{TotalTokens: 10}}, nil
	}
	reply := m.Replies[0]
	m.Replies = m.Replies[1:]
	return &Response{Content: reply, Usage: Usage{TotalTokens: len(reply)}}, nil
}

func (m *StubProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if vec, ok := m.Embeddings[text]; ok {
		return vec, nil
	}

	// Cheap deterministic embedding: byte histogram folded into eight
	// buckets. Identical texts always map to identical vectors.
	vec := make([]float32, 8)
	for i := 0; i < len(text); i++ {
		vec[int(text[i])%8]++
	}
	return vec, nil
}

func (m *StubProvider) Name() string {
	return "stub"
}
