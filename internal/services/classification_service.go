package services

import (
	"context"
	"fmt"
	"time"

	apperrors "instructly_go_backend/internal/errors"
	"instructly_go_backend/internal/metrics"
	"instructly_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	maxTopicsPerBatch = 10
	maxTopicLength    = 1000
)

// ClassificationService is the topic classification engine. It processes a
// batch one topic at a time, serving repeats from the cache and charging only
// the topics that reach a backend. It is constructed once at startup with its
// collaborators and holds no global state besides the injected cache.
type ClassificationService struct {
	backend    ClassificationBackend
	cache      TopicCache
	usageStore UsageStore
	router     *ModelRouter
}

func NewClassificationService(
	backend ClassificationBackend,
	cache TopicCache,
	usageStore UsageStore,
	router *ModelRouter,
) *ClassificationService {
	return &ClassificationService{
		backend:    backend,
		cache:      cache,
		usageStore: usageStore,
		router:     router,
	}
}

// AnalyzeTopics classifies every topic in the request, in request order.
// Cached topics contribute nothing to the total cost. Any topic failure
// aborts the whole batch; there are no partial results.
func (cs *ClassificationService) AnalyzeTopics(ctx context.Context, userID uuid.UUID, req *models.ClassificationRequest) (*models.ClassificationResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &models.ClassificationResult{
		Topics: make([]models.Topic, 0, len(req.Topics)),
	}

	for i, content := range req.Topics {
		if cached, ok := cs.cache.Get(content, req.AnalysisType); ok {
			result.Topics = append(result.Topics, *cached)
			continue
		}

		topic, cost, err := cs.classifySingle(ctx, userID, content, req.AnalysisType)
		if err != nil {
			log.Error().Err(err).Int("topic_index", i).Msg("aborting batch, topic classification failed")
			return nil, err
		}

		result.Topics = append(result.Topics, *topic)
		result.TotalCost += cost
		cs.cache.Set(content, req.AnalysisType, topic)
	}

	result.ProcessingTime = time.Since(start)
	return result, nil
}

// classifySingle routes one topic to a tier, runs the backend (retrying once
// at the same tier on failure), prices the call, and appends a usage record.
// A failed usage write is logged and swallowed so billing-audit gaps never
// turn into classification failures.
func (cs *ClassificationService) classifySingle(ctx context.Context, userID uuid.UUID, content string, analysisType models.AnalysisType) (*models.Topic, float64, error) {
	tier := cs.router.SelectTier(content)

	outcome, err := cs.backend.Classify(ctx, content, analysisType, tier)
	if err != nil {
		metrics.ProviderRetriesTotal.Inc()
		log.Warn().Err(err).Str("tier", tier.Name).Msg("classification failed, retrying once")
		outcome, err = cs.backend.Classify(ctx, content, analysisType, tier)
		if err != nil {
			return nil, 0, err
		}
	}

	cost := tier.Cost(outcome.InputTokens, outcome.OutputTokens)
	metrics.ClassificationsTotal.WithLabelValues(tier.Name).Inc()
	metrics.ClassificationCostUSD.WithLabelValues(tier.Name).Add(cost)

	topic := &models.Topic{
		ID:             uuid.New(),
		Content:        content,
		Classification: outcome.Classification,
		Analysis: models.TopicAnalysis{
			ContentType:        outcome.ContentType,
			Rationale:          outcome.Rationale,
			RecommendedMethods: outcome.Methods,
			Confidence:         outcome.Confidence,
			ModelTier:          tier.Name,
		},
		GeneratedAt: time.Now(),
	}

	record := &models.UsageRecord{
		UserID:        userID,
		ModelTier:     tier.Name,
		OperationType: "topic_classification",
		InputTokens:   outcome.InputTokens,
		OutputTokens:  outcome.OutputTokens,
		CostUSD:       cost,
	}
	if err := cs.usageStore.AppendUsageRecord(record); err != nil {
		metrics.UsageLogFailures.Inc()
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to persist usage record")
	}

	return topic, cost, nil
}

func validateRequest(req *models.ClassificationRequest) error {
	if len(req.Topics) == 0 {
		return apperrors.NewValidationError("topics list must not be empty")
	}
	if len(req.Topics) > maxTopicsPerBatch {
		return apperrors.NewValidationError(fmt.Sprintf("at most %d topics per request", maxTopicsPerBatch))
	}
	for i, topic := range req.Topics {
		if topic == "" {
			return apperrors.NewValidationError(fmt.Sprintf("topic %d is empty", i+1))
		}
		if len(topic) > maxTopicLength {
			return apperrors.NewValidationError(fmt.Sprintf("topic %d exceeds %d characters", i+1, maxTopicLength))
		}
	}
	if !models.ValidAnalysisType(req.AnalysisType) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid analysis type %q", req.AnalysisType))
	}
	return nil
}
