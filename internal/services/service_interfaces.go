package services

import (
	"context"
	"time"

	"instructly_go_backend/internal/models"

	"github.com/google/uuid"
)

// CompletionResult is one text completion with the provider's reported usage.
type CompletionResult struct {
	Content      string
	InputTokens  int32
	OutputTokens int32
}

// CompletionProvider is the narrow surface of the external language model.
type CompletionProvider interface {
	Complete(ctx context.Context, model, systemPrompt, userPrompt string) (*CompletionResult, error)
}

// ClassificationOutcome is one classified topic plus the token usage that
// produced it. Token counts are estimates in synthetic mode.
type ClassificationOutcome struct {
	Classification models.Classification
	ContentType    string
	Rationale      string
	Methods        []string
	Confidence     float64
	InputTokens    int32
	OutputTokens   int32
}

// ClassificationBackend produces a classification for a single topic.
// The live variant calls the model provider; the synthetic variant
// classifies locally and is used when the provider is disabled.
type ClassificationBackend interface {
	Classify(ctx context.Context, topic string, analysisType models.AnalysisType, tier ModelTier) (*ClassificationOutcome, error)
}

// TopicCache stores classified topics keyed by (content, analysisType).
type TopicCache interface {
	Get(content string, analysisType models.AnalysisType) (*models.Topic, bool)
	Set(content string, analysisType models.AnalysisType, topic *models.Topic)
	Len() int
}

// UsageStore persists the billing ledger.
type UsageStore interface {
	AppendUsageRecord(record *models.UsageRecord) error
	SumCostSince(userID uuid.UUID, since time.Time) (float64, error)
}
