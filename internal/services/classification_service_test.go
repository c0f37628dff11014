package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	apperrors "instructly_go_backend/internal/errors"
	"instructly_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(backend ClassificationBackend, store UsageStore) *ClassificationService {
	return NewClassificationService(
		backend,
		NewInMemoryTopicCache(24*time.Hour, 50),
		store,
		NewModelRouter(StandardTier, AdvancedTier),
	)
}

func factsOutcome(inputTokens, outputTokens int32) *ClassificationOutcome {
	return &ClassificationOutcome{
		Classification: models.ClassificationFacts,
		ContentType:    "specific syntax rules",
		Rationale:      "Syntax is recalled, not reasoned about.",
		Methods:        []string{"flashcards", "practice"},
		Confidence:     0.9,
		InputTokens:    inputTokens,
		OutputTokens:   outputTokens,
	}
}

func TestAnalyzeTopicsValidation(t *testing.T) {
	service := newTestService(new(MockClassificationBackend), new(MockUsageStore))
	userID := uuid.New()
	ctx := context.Background()

	tenTopics := make([]string, 10)
	for i := range tenTopics {
		tenTopics[i] = fmt.Sprintf("topic %d", i)
	}

	tests := []struct {
		name    string
		req     *models.ClassificationRequest
		wantErr bool
	}{
		{
			name:    "empty topics list",
			req:     &models.ClassificationRequest{Topics: nil, AnalysisType: models.AnalysisTypeInstructionalDesign},
			wantErr: true,
		},
		{
			name:    "eleven topics",
			req:     &models.ClassificationRequest{Topics: append(append([]string{}, tenTopics...), "one more"), AnalysisType: models.AnalysisTypeInstructionalDesign},
			wantErr: true,
		},
		{
			name:    "topic of 1001 characters",
			req:     &models.ClassificationRequest{Topics: []string{strings.Repeat("x", 1001)}, AnalysisType: models.AnalysisTypeInstructionalDesign},
			wantErr: true,
		},
		{
			name:    "empty topic string",
			req:     &models.ClassificationRequest{Topics: []string{""}, AnalysisType: models.AnalysisTypeInstructionalDesign},
			wantErr: true,
		},
		{
			name:    "unknown analysis type",
			req:     &models.ClassificationRequest{Topics: []string{"ok"}, AnalysisType: "astrology"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AnalyzeTopics(ctx, userID, tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}

	t.Run("exactly ten topics of exactly 1000 characters succeed", func(t *testing.T) {
		backend := new(MockClassificationBackend)
		store := new(MockUsageStore)
		backend.On("Classify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(factsOutcome(10, 10), nil)
		store.On("AppendUsageRecord", mock.Anything).Return(nil)
		service := newTestService(backend, store)

		topics := make([]string, 10)
		for i := range topics {
			// Unique prefix keeps every topic a cache miss
			topics[i] = fmt.Sprintf("%d", i) + strings.Repeat("x", 999)
		}
		result, err := service.AnalyzeTopics(ctx, userID, &models.ClassificationRequest{
			Topics:       topics,
			AnalysisType: models.AnalysisTypeInstructionalDesign,
		})
		require.NoError(t, err)
		assert.Len(t, result.Topics, 10)
	})
}

func TestAnalyzeTopicsOrderingAndContent(t *testing.T) {
	backend := new(MockClassificationBackend)
	store := new(MockUsageStore)
	backend.On("Classify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(factsOutcome(10, 10), nil)
	store.On("AppendUsageRecord", mock.Anything).Return(nil)
	service := newTestService(backend, store)

	topics := []string{"photosynthesis", "cell division", "osmosis"}
	result, err := service.AnalyzeTopics(context.Background(), uuid.New(), &models.ClassificationRequest{
		Topics:       topics,
		AnalysisType: models.AnalysisTypeInstructionalDesign,
	})
	require.NoError(t, err)
	require.Len(t, result.Topics, len(topics))
	for i, topic := range result.Topics {
		assert.Equal(t, topics[i], topic.Content)
		assert.NotEqual(t, uuid.Nil, topic.ID)
		assert.False(t, topic.GeneratedAt.IsZero())
	}
}

func TestAnalyzeTopicsEndToEnd(t *testing.T) {
	backend := new(MockClassificationBackend)
	store := new(MockUsageStore)
	userID := uuid.New()

	backend.On("Classify", mock.Anything, "Python syntax basics", models.AnalysisTypeInstructionalDesign, mock.MatchedBy(func(tier ModelTier) bool {
		return tier.Name == StandardTier.Name
	})).Return(factsOutcome(100, 50), nil).Once()
	store.On("AppendUsageRecord", mock.MatchedBy(func(r *models.UsageRecord) bool {
		return r.UserID == userID &&
			r.ModelTier == StandardTier.Name &&
			r.OperationType == "topic_classification" &&
			r.InputTokens == 100 && r.OutputTokens == 50
	})).Return(nil).Once()

	service := newTestService(backend, store)
	result, err := service.AnalyzeTopics(context.Background(), userID, &models.ClassificationRequest{
		Topics:       []string{"Python syntax basics"},
		AnalysisType: models.AnalysisTypeInstructionalDesign,
	})

	require.NoError(t, err)
	require.Len(t, result.Topics, 1)
	assert.Equal(t, models.ClassificationFacts, result.Topics[0].Classification)
	assert.Equal(t, "specific syntax rules", result.Topics[0].Analysis.ContentType)
	assert.Equal(t, StandardTier.Name, result.Topics[0].Analysis.ModelTier)

	wantCost := 100*StandardTier.InputRate + 50*StandardTier.OutputRate
	assert.InDelta(t, wantCost, result.TotalCost, 1e-12)

	backend.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestAnalyzeTopicsCacheIdempotence(t *testing.T) {
	backend := new(MockClassificationBackend)
	store := new(MockUsageStore)
	backend.On("Classify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(factsOutcome(100, 50), nil).Once()
	store.On("AppendUsageRecord", mock.Anything).Return(nil).Once()

	service := newTestService(backend, store)
	req := &models.ClassificationRequest{
		Topics:       []string{"Python syntax basics"},
		AnalysisType: models.AnalysisTypeInstructionalDesign,
	}

	first, err := service.AnalyzeTopics(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Greater(t, first.TotalCost, 0.0)

	// Second identical call is served entirely from the cache: no backend
	// call, no usage record, zero cost, identical classification output.
	second, err := service.AnalyzeTopics(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, second.TotalCost)
	assert.Equal(t, first.Topics[0].Classification, second.Topics[0].Classification)
	assert.Equal(t, first.Topics[0].Analysis, second.Topics[0].Analysis)

	backend.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestAnalyzeTopicsCostIsSumOfCacheMisses(t *testing.T) {
	backend := new(MockClassificationBackend)
	store := new(MockUsageStore)
	backend.On("Classify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(factsOutcome(100, 50), nil)
	store.On("AppendUsageRecord", mock.Anything).Return(nil)

	service := newTestService(backend, store)
	perTopic := 100*StandardTier.InputRate + 50*StandardTier.OutputRate

	// "alpha" repeats within the batch, so only two topics cost anything.
	result, err := service.AnalyzeTopics(context.Background(), uuid.New(), &models.ClassificationRequest{
		Topics:       []string{"alpha", "beta", "alpha"},
		AnalysisType: models.AnalysisTypeInstructionalDesign,
	})
	require.NoError(t, err)
	require.Len(t, result.Topics, 3)
	assert.InDelta(t, 2*perTopic, result.TotalCost, 1e-12)

	backend.AssertNumberOfCalls(t, "Classify", 2)
}

func TestAnalyzeTopicsRetriesOnceThenAborts(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	t.Run("Second attempt succeeds", func(t *testing.T) {
		backend := new(MockClassificationBackend)
		store := new(MockUsageStore)
		backend.On("Classify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.NewProviderError("model provider call failed", fmt.Errorf("transient"))).Once()
		backend.On("Classify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(factsOutcome(10, 10), nil).Once()
		store.On("AppendUsageRecord", mock.Anything).Return(nil)

		service := newTestService(backend, store)
		result, err := service.AnalyzeTopics(ctx, userID, &models.ClassificationRequest{
			Topics:       []string{"retryable topic"},
			AnalysisType: models.AnalysisTypeInstructionalDesign,
		})
		require.NoError(t, err)
		assert.Len(t, result.Topics, 1)
		backend.AssertNumberOfCalls(t, "Classify", 2)
	})

	t.Run("Two failures abort the whole batch", func(t *testing.T) {
		backend := new(MockClassificationBackend)
		store := new(MockUsageStore)
		backend.On("Classify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.NewProviderError("model provider call failed", fmt.Errorf("down")))

		service := newTestService(backend, store)
		result, err := service.AnalyzeTopics(ctx, userID, &models.ClassificationRequest{
			Topics:       []string{"first", "second"},
			AnalysisType: models.AnalysisTypeInstructionalDesign,
		})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProvider))
		// The batch aborts on the first topic: one call plus one retry.
		backend.AssertNumberOfCalls(t, "Classify", 2)
		store.AssertNotCalled(t, "AppendUsageRecord", mock.Anything)
	})
}

func TestAnalyzeTopicsSurvivesUsageLogFailure(t *testing.T) {
	backend := new(MockClassificationBackend)
	store := new(MockUsageStore)
	backend.On("Classify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(factsOutcome(100, 50), nil).Once()
	store.On("AppendUsageRecord", mock.Anything).Return(fmt.Errorf("ledger unavailable")).Once()

	service := newTestService(backend, store)
	result, err := service.AnalyzeTopics(context.Background(), uuid.New(), &models.ClassificationRequest{
		Topics:       []string{"Python syntax basics"},
		AnalysisType: models.AnalysisTypeInstructionalDesign,
	})

	require.NoError(t, err)
	require.Len(t, result.Topics, 1)
	assert.Greater(t, result.TotalCost, 0.0)
	store.AssertExpectations(t)
}
