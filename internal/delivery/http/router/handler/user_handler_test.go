package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "pfm/internal/delivery/context"
	"pfm/internal/delivery/http/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMe_ReturnsUserObject(t *testing.T) {
	e := echo.New()
	h := NewUserHandler()

	identity := &deliverycontext.Identity{
		UserID:    uuid.New(),
		Email:     "user@example.com",
		Name:      "User",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = req.WithContext(deliverycontext.WithIdentity(req.Context(), identity))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)

	// The account lives under a "user" key, not at the top of data.
	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, identity.Email, user["email"])
	assert.Equal(t, identity.UserID.String(), user["id"])
	assert.NotEmpty(t, user["createdAt"])
}

func TestMe_WithoutIdentity(t *testing.T) {
	e := echo.New()
	h := NewUserHandler()

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
}
