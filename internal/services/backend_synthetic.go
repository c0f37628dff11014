package services

import (
	"context"
	"strings"

	"instructly_go_backend/internal/models"
)

// Token estimates used to price synthetic classifications with the same
// per-tier rates as live calls.
const (
	syntheticInputTokens  int32 = 150
	syntheticOutputTokens int32 = 250
)

// categoryHints maps keyword signals to a classification. Checked in order;
// the first hit wins, so a topic mentioning both a procedure and a principle
// reads as a procedure.
var categoryHints = []struct {
	classification models.Classification
	keywords       []string
}{
	{models.ClassificationProcedures, []string{"how to", "steps", "install", "configure", "setup", "checklist"}},
	{models.ClassificationProcesses, []string{"process", "cycle", "workflow", "lifecycle", "pipeline"}},
	{models.ClassificationPrinciples, []string{"principle", "theory", "law", "why", "best practice"}},
	{models.ClassificationConcepts, []string{"concept", "understanding", "difference between", "model", "meaning"}},
}

var syntheticProfiles = map[models.Classification]struct {
	contentType string
	rationale   string
	methods     []string
}{
	models.ClassificationFacts: {
		contentType: "discrete factual information",
		rationale:   "The topic centers on specific items of information to be recalled.",
		methods:     []string{"flashcards", "spaced repetition", "mnemonics"},
	},
	models.ClassificationConcepts: {
		contentType: "abstract idea or category",
		rationale:   "The topic describes a category or idea defined by shared attributes.",
		methods:     []string{"concept mapping", "examples and non-examples", "analogies"},
	},
	models.ClassificationProcesses: {
		contentType: "how something works",
		rationale:   "The topic describes stages or phases unfolding over time.",
		methods:     []string{"flow diagrams", "simulations", "guided walkthroughs"},
	},
	models.ClassificationProcedures: {
		contentType: "how to perform a task",
		rationale:   "The topic describes an ordered series of actions a learner performs.",
		methods:     []string{"step-by-step practice", "demonstrations", "job aids"},
	},
	models.ClassificationPrinciples: {
		contentType: "guideline or causal rule",
		rationale:   "The topic expresses a rule or relationship that guides judgment.",
		methods:     []string{"case studies", "problem-based learning", "guided discovery"},
	},
}

// SyntheticBackend classifies topics locally with keyword matching. It stands
// in for the model provider when the provider is unreachable or deliberately
// disabled, so classification stays available in degraded mode.
type SyntheticBackend struct{}

func NewSyntheticBackend() *SyntheticBackend {
	return &SyntheticBackend{}
}

func (b *SyntheticBackend) Classify(_ context.Context, topic string, _ models.AnalysisType, _ ModelTier) (*ClassificationOutcome, error) {
	classification := models.ClassificationFacts
	lowered := strings.ToLower(topic)
	for _, hint := range categoryHints {
		for _, keyword := range hint.keywords {
			if strings.Contains(lowered, keyword) {
				classification = hint.classification
				break
			}
		}
		if classification != models.ClassificationFacts {
			break
		}
	}

	profile := syntheticProfiles[classification]
	return &ClassificationOutcome{
		Classification: classification,
		ContentType:    profile.contentType,
		Rationale:      profile.rationale,
		Methods:        profile.methods,
		Confidence:     0.7,
		InputTokens:    syntheticInputTokens,
		OutputTokens:   syntheticOutputTokens,
	}, nil
}
