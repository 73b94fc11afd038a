// Package insight holds the AI guidance integration point.
package insight

import (
	"context"

	"pfm/internal/domain/service"
)

// stubInsightService returns a canned response until the LLM provider
// integration lands. Keeping the seam here lets the delivery layer and its
// routes ship ahead of the provider choice.
type stubInsightService struct{}

// NewStubInsightService is the constructor for stubInsightService.
func NewStubInsightService() service.InsightService {
	return &stubInsightService{}
}

func (s *stubInsightService) GenerateInsight(_ context.Context) (*service.Insight, error) {
	return &service.Insight{
		Status:    "pending_integration",
		Summary:   "Automated insights are not available yet.",
		NextSteps: "Connect an analysis provider to enable spending insights.",
	}, nil
}
