package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisType selects the instructional lens used to classify a topic.
type AnalysisType string

const (
	AnalysisTypeInstructionalDesign  AnalysisType = "instructional_design"
	AnalysisTypeBloomTaxonomy        AnalysisType = "bloom_taxonomy"
	AnalysisTypeInstructionalMethods AnalysisType = "instructional_methods"
)

// ValidAnalysisType reports whether t is one of the supported analysis types.
func ValidAnalysisType(t AnalysisType) bool {
	switch t {
	case AnalysisTypeInstructionalDesign, AnalysisTypeBloomTaxonomy, AnalysisTypeInstructionalMethods:
		return true
	}
	return false
}

// Classification is one of the five instructional-design content categories.
type Classification string

const (
	ClassificationFacts      Classification = "facts"
	ClassificationConcepts   Classification = "concepts"
	ClassificationProcesses  Classification = "processes"
	ClassificationProcedures Classification = "procedures"
	ClassificationPrinciples Classification = "principles"
)

// ValidClassification reports whether c is one of the five categories.
func ValidClassification(c Classification) bool {
	switch c {
	case ClassificationFacts, ClassificationConcepts, ClassificationProcesses,
		ClassificationProcedures, ClassificationPrinciples:
		return true
	}
	return false
}

// TopicAnalysis holds the structured explanation behind a classification.
type TopicAnalysis struct {
	ContentType        string   `json:"contentType"`
	Rationale          string   `json:"rationale"`
	RecommendedMethods []string `json:"recommendedMethods"`
	Confidence         float64  `json:"confidence"`
	ModelTier          string   `json:"modelTier"`
}

// Topic is a classified topic. It is created once per (content, analysisType)
// pair and never mutated afterwards; the cache entry that produced it owns it.
type Topic struct {
	ID             uuid.UUID      `json:"id"`
	Content        string         `json:"content"`
	Classification Classification `json:"classification"`
	Analysis       TopicAnalysis  `json:"analysis"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

// ClassificationRequest is a batch of topics to classify.
type ClassificationRequest struct {
	Topics       []string     `json:"topics"`
	AnalysisType AnalysisType `json:"analysisType"`
}

// ClassificationResult is the outcome of one batch call. Topics are ordered
// to match the request; TotalCost sums only the non-cached classifications.
type ClassificationResult struct {
	Topics         []Topic       `json:"topics"`
	TotalCost      float64       `json:"totalCost"`
	ProcessingTime time.Duration `json:"processingTime"`
}

// CostLimitStatus is the result of checking a user's monthly spend against
// the per-user cap.
type CostLimitStatus struct {
	WithinLimits bool    `json:"withinLimits"`
	CurrentCost  float64 `json:"currentCost"`
	Limit        float64 `json:"limit"`
}
