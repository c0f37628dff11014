package services

import "strings"

// ModelTier is a named model configuration with its per-token pricing.
type ModelTier struct {
	Name       string
	Model      string
	InputRate  float64 // USD per input token
	OutputRate float64 // USD per output token
}

// Cost computes the USD cost of one completion on this tier.
func (t ModelTier) Cost(inputTokens, outputTokens int32) float64 {
	return float64(inputTokens)*t.InputRate + float64(outputTokens)*t.OutputRate
}

var (
	// StandardTier handles short, straightforward topics.
	StandardTier = ModelTier{
		Name:       "standard",
		Model:      "gemini-1.5-flash",
		InputRate:  0.00000015,
		OutputRate: 0.0000006,
	}

	// AdvancedTier handles topics that signal analytical depth.
	AdvancedTier = ModelTier{
		Name:       "advanced",
		Model:      "gemini-1.5-pro",
		InputRate:  0.000006,
		OutputRate: 0.000024,
	}
)

// complexitySignals are matched case-insensitively as substrings. Any hit
// routes the topic to the advanced tier.
var complexitySignals = []string{
	"analyze",
	"evaluate",
	"synthesize",
	"design",
	"theory",
	"framework",
	"methodology",
	"strategy",
}

const complexityLengthThreshold = 100

// ModelRouter picks a tier for a topic. The heuristic is a pure function of
// the topic text.
type ModelRouter struct {
	standard ModelTier
	advanced ModelTier
}

func NewModelRouter(standard, advanced ModelTier) *ModelRouter {
	return &ModelRouter{standard: standard, advanced: advanced}
}

// SelectTier returns the advanced tier when the topic contains a complexity
// signal word or exceeds the length threshold, and the standard tier otherwise.
func (r *ModelRouter) SelectTier(topic string) ModelTier {
	if len(topic) > complexityLengthThreshold {
		return r.advanced
	}
	lowered := strings.ToLower(topic)
	for _, signal := range complexitySignals {
		if strings.Contains(lowered, signal) {
			return r.advanced
		}
	}
	return r.standard
}
