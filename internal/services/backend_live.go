package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "instructly_go_backend/internal/errors"
	"instructly_go_backend/internal/models"
)

const classificationSystemPrompt = `You are an instructional design expert. Classify the given topic into exactly one of five content categories:
- facts: discrete pieces of information to be recalled (names, dates, symbols, syntax)
- concepts: categories or abstract ideas defined by shared attributes
- processes: descriptions of how something works, unfolding in stages over time
- procedures: ordered series of steps a learner performs to complete a task
- principles: guidelines, heuristics, or cause-and-effect rules that guide judgment

Respond with a single JSON object with these fields:
{"classification": "<one of: facts, concepts, processes, procedures, principles>", "contentType": "<short description of the content type>", "rationale": "<why this classification fits>", "recommendedMethods": ["<teaching method>", ...], "confidence": <0.0-1.0>}`

// classificationResponse is the structured object the model must return.
type classificationResponse struct {
	Classification     string   `json:"classification"`
	ContentType        string   `json:"contentType"`
	Rationale          string   `json:"rationale"`
	RecommendedMethods []string `json:"recommendedMethods"`
	Confidence         float64  `json:"confidence"`
}

// LiveBackend classifies topics by calling the external model provider.
type LiveBackend struct {
	provider CompletionProvider
}

func NewLiveBackend(provider CompletionProvider) *LiveBackend {
	return &LiveBackend{provider: provider}
}

func (b *LiveBackend) Classify(ctx context.Context, topic string, analysisType models.AnalysisType, tier ModelTier) (*ClassificationOutcome, error) {
	userPrompt := fmt.Sprintf("Analysis type: %s\nTopic: %s", analysisType, topic)

	result, err := b.provider.Complete(ctx, tier.Model, classificationSystemPrompt, userPrompt)
	if err != nil {
		return nil, apperrors.NewProviderError("model provider call failed", err)
	}

	parsed, err := parseClassificationResponse(result.Content)
	if err != nil {
		return nil, apperrors.NewProviderError("unparseable model response", err)
	}

	return &ClassificationOutcome{
		Classification: models.Classification(parsed.Classification),
		ContentType:    parsed.ContentType,
		Rationale:      parsed.Rationale,
		Methods:        parsed.RecommendedMethods,
		Confidence:     parsed.Confidence,
		InputTokens:    result.InputTokens,
		OutputTokens:   result.OutputTokens,
	}, nil
}

func parseClassificationResponse(content string) (*classificationResponse, error) {
	// Some models wrap JSON output in a markdown fence despite the MIME hint.
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var parsed classificationResponse
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode classification response: %w", err)
	}

	if !models.ValidClassification(models.Classification(parsed.Classification)) {
		return nil, fmt.Errorf("unknown classification %q", parsed.Classification)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return nil, fmt.Errorf("confidence %v out of range", parsed.Confidence)
	}

	return &parsed, nil
}
