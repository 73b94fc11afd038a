package handler

import (
	"net/http"

	deliverycontext "pfm/internal/delivery/context"
	"pfm/internal/delivery/http/response"
	"pfm/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// InsightHandler serves AI-generated financial guidance.
type InsightHandler struct {
	insights service.InsightService
}

// NewInsightHandler is the constructor for InsightHandler, injected by Fx.
func NewInsightHandler(insights service.InsightService) *InsightHandler {
	return &InsightHandler{insights: insights}
}

// GetInsights returns generated guidance. The route uses the optional guard:
// anonymous callers get the generic response, authenticated callers will get
// personalized insights once the provider integration lands.
func (h *InsightHandler) GetInsights(c echo.Context) error {
	ctx := c.Request().Context()

	insight, err := h.insights.GenerateInsight(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	payload := map[string]any{"insight": insight}
	if identity, ok := deliverycontext.GetIdentity(ctx); ok {
		payload["userId"] = identity.UserID
	}

	return response.Success(c, http.StatusOK, payload, "Insights retrieved successfully")
}
