package service

import "context"

// Insight is a single piece of generated financial guidance.
type Insight struct {
	Status    string `json:"status"`
	Summary   string `json:"summary"`
	NextSteps string `json:"nextSteps"`
}

// InsightService bridges business data with an LLM provider for
// categorization hints and spending insights. The concrete implementation is
// a stub until prompt templates are defined.
type InsightService interface {
	GenerateInsight(ctx context.Context) (*Insight, error)
}
