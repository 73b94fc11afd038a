package handler

import (
	"net/http"

	deliverycontext "pfm/internal/delivery/context"
	"pfm/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// UserHandler holds dependencies for user profile handlers.
type UserHandler struct{}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the authenticated account. The auth guard already loaded the
// user, so this reads straight from the request context.
func (h *UserHandler) Me(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c.Request().Context())
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": identity}, "Profile retrieved successfully")
}
