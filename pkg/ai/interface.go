package ai

import (
	"context"
)

// Provider is a chat-completion backend. OpenAI handles content generation,
// Perplexity handles market research questions that need live web grounding.
type Provider interface {
	Name() string
	Complete(ctx context.Context, request *CompletionRequest) (*CompletionResponse, error)
}

type CompletionRequest struct {
	Model       string  `json:"model"`
	System      string  `json:"system"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type CompletionResponse struct {
	Text         string `json:"text"`
	Model        string `json:"model"`
	PromptTokens int    `json:"prompt_tokens"`
	OutputTokens int    `json:"output_tokens"`
}
