package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"psmestate/internal/models"
	"psmestate/pkg/ai"
)

type stubProvider struct {
	name string
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Complete(ctx context.Context, request *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	return &ai.CompletionResponse{Text: "stub"}, nil
}

func TestSplitDraftWithH1(t *testing.T) {
	title, body := splitDraft("# Phuket Rental Market in 2026\n\nDemand keeps climbing.")
	assert.Equal(t, "Phuket Rental Market in 2026", title)
	assert.Equal(t, "Demand keeps climbing.", body)
}

func TestSplitDraftH1Only(t *testing.T) {
	title, body := splitDraft("# Just a headline")
	assert.Equal(t, "Just a headline", title)
	assert.Empty(t, body)
}

func TestSplitDraftWithoutH1(t *testing.T) {
	text := "Sea-view villas in Kamala\nFull description follows."
	title, body := splitDraft(text)
	assert.Equal(t, "Sea-view villas in Kamala", title)
	assert.Equal(t, text, body)
}

func TestSplitDraftTruncatesLongFirstLine(t *testing.T) {
	title, _ := splitDraft(strings.Repeat("a", 300))
	assert.Len(t, title, 120)
}

func TestSplitDraftTruncatesOnRuneBoundary(t *testing.T) {
	title, _ := splitDraft(strings.Repeat("ภ", 300))
	assert.True(t, utf8.ValidString(title))
	assert.Equal(t, 120, utf8.RuneCountInString(title))
}

func TestProposalTitleFallsBackToKind(t *testing.T) {
	assert.Equal(t, string(models.AgentKindSEOUpdate), proposalTitle(models.AgentKindSEOUpdate, "   "))
}

func TestDefaultProviderRouting(t *testing.T) {
	service := &agentService{providers: map[string]ai.Provider{
		"openai":     &stubProvider{name: "openai"},
		"perplexity": &stubProvider{name: "perplexity"},
	}}

	assert.Equal(t, "perplexity", service.defaultProvider(models.AgentKindMarketResearch))
	assert.Equal(t, "openai", service.defaultProvider(models.AgentKindBlogDraft))
	assert.Equal(t, "openai", service.defaultProvider(models.AgentKindListingCopy))
}

func TestDefaultProviderWithoutPerplexity(t *testing.T) {
	service := &agentService{providers: map[string]ai.Provider{
		"openai": &stubProvider{name: "openai"},
	}}

	assert.Equal(t, "openai", service.defaultProvider(models.AgentKindMarketResearch))
}
