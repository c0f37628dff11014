package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
)

// ContentGenerator is the slice of the genai client the provider needs.
type ContentGenerator interface {
	GenerativeModel(name string) *genai.GenerativeModel
}

// GenAIProvider adapts the Google generative AI client to CompletionProvider.
// Each call gets its own timeout so a stalled provider cannot hold a batch.
type GenAIProvider struct {
	client  ContentGenerator
	timeout time.Duration
}

func NewGenAIProvider(client ContentGenerator, timeout time.Duration) *GenAIProvider {
	return &GenAIProvider{client: client, timeout: timeout}
}

func (p *GenAIProvider) Complete(ctx context.Context, modelName, systemPrompt, userPrompt string) (*CompletionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	model := p.client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("model returned no candidates")
	}

	var content string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			content += string(text)
		}
	}
	if content == "" {
		return nil, fmt.Errorf("model returned no text content")
	}

	result := &CompletionResult{Content: content}
	if resp.UsageMetadata != nil {
		result.InputTokens = resp.UsageMetadata.PromptTokenCount
		result.OutputTokens = resp.UsageMetadata.CandidatesTokenCount
	}
	return result, nil
}
