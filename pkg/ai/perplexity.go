package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const perplexityEndpoint = "https://api.perplexity.ai/chat/completions"

// PerplexityClient speaks the same chat-completions shape as OpenAI but with
// web-grounded answers; used for market research prompts.
type PerplexityClient struct {
	apiKey       string
	defaultModel string
	httpClient   *http.Client
}

func NewPerplexityClient(apiKey, defaultModel string) *PerplexityClient {
	if defaultModel == "" {
		defaultModel = "sonar"
	}
	return &PerplexityClient{
		apiKey:       apiKey,
		defaultModel: defaultModel,
		httpClient:   &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *PerplexityClient) Name() string {
	return "perplexity"
}

func (c *PerplexityClient) Complete(ctx context.Context, request *CompletionRequest) (*CompletionResponse, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing Perplexity API key")
	}
	if request.Prompt == "" {
		return nil, errors.New("empty prompt")
	}

	model := request.Model
	if model == "" {
		model = c.defaultModel
	}

	var messages []chatMessage
	if request.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: request.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: request.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   request.MaxTokens,
		Temperature: request.Temperature,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, perplexityEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perplexity request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("perplexity returned status %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("perplexity returned invalid JSON: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, errors.New("perplexity returned no choices")
	}

	return &CompletionResponse{
		Text:         parsed.Choices[0].Message.Content,
		Model:        parsed.Model,
		PromptTokens: parsed.Usage.PromptTokens,
		OutputTokens: parsed.Usage.CompletionTokens,
	}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
