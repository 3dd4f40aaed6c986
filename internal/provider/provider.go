// Package provider abstracts the language-model backends used for
// coaching replies, trait scoring and knowledge embeddings.
package provider

import (
	"context"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response represents the output from the model.
type Response struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Provider defines the interface for AI model interactions. A provider
// may serve several roles at once: generating the coached reply,
// scoring traits and embedding knowledge passages.
type Provider interface {
	// Chat sends a list of messages to the model and returns a response.
	Chat(ctx context.Context, messages []Message) (*Response, error)

	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Name returns the provider identifier (e.g., "stub", "gemini").
	Name() string
}
