package services

import (
	"context"
	"time"

	"instructly_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockClassificationBackend struct {
	mock.Mock
}

func (m *MockClassificationBackend) Classify(ctx context.Context, topic string, analysisType models.AnalysisType, tier ModelTier) (*ClassificationOutcome, error) {
	args := m.Called(ctx, topic, analysisType, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassificationOutcome), args.Error(1)
}

type MockUsageStore struct {
	mock.Mock
}

func (m *MockUsageStore) AppendUsageRecord(record *models.UsageRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockUsageStore) SumCostSince(userID uuid.UUID, since time.Time) (float64, error) {
	args := m.Called(userID, since)
	return args.Get(0).(float64), args.Error(1)
}

type MockCompletionProvider struct {
	mock.Mock
}

func (m *MockCompletionProvider) Complete(ctx context.Context, model, systemPrompt, userPrompt string) (*CompletionResult, error) {
	args := m.Called(ctx, model, systemPrompt, userPrompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CompletionResult), args.Error(1)
}
