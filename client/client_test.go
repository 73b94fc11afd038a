package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Email == "taken@example.com" {
			writeEnvelope(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "User with this email already exists",
				"error":   map[string]string{"code": "EMAIL_ALREADY_EXISTS"},
			})

			return
		}

		writeEnvelope(w, http.StatusCreated, map[string]any{
			"success": true,
			"data": map[string]any{
				"user":   map[string]string{"id": "u1", "email": req.Email, "name": req.Name},
				"tokens": map[string]string{"accessToken": "a1", "refreshToken": "r1"},
			},
		})
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Password != "StrongPass123!" {
			writeEnvelope(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Invalid email or password",
				"error":   map[string]string{"code": "INVALID_CREDENTIALS"},
			})

			return
		}

		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"user":   map[string]string{"id": "u1", "email": req.Email},
				"tokens": map[string]string{"accessToken": "a2", "refreshToken": "r2"},
			},
		})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestClient_Register(t *testing.T) {
	server := newAuthServer(t)
	store := NewMemoryStore()
	c := New(server.URL, store)

	account, err := c.Register(context.Background(), &RegisterRequest{
		Email:    "new@example.com",
		Password: "StrongPass123!",
		Name:     "New User",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", account.Email)

	access, refresh := store.Tokens()
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)
}

func TestClient_Register_Duplicate(t *testing.T) {
	server := newAuthServer(t)
	c := New(server.URL, nil)

	account, err := c.Register(context.Background(), &RegisterRequest{
		Email:    "taken@example.com",
		Password: "StrongPass123!",
	})

	require.Error(t, err)
	assert.Nil(t, account)

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", apiErr.Code)
	assert.Contains(t, apiErr.Message, "already exists")
}

func TestClient_LoginAndLogout(t *testing.T) {
	server := newAuthServer(t)
	store := NewMemoryStore()
	c := New(server.URL, store)

	account, err := c.Login(context.Background(), &LoginRequest{
		Email:    "user@example.com",
		Password: "StrongPass123!",
	})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", account.Email)

	access, refresh := store.Tokens()
	assert.Equal(t, "a2", access)
	assert.Equal(t, "r2", refresh)

	require.NoError(t, c.Logout(context.Background()))

	access, refresh = store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestClient_Login_BadPassword(t *testing.T) {
	server := newAuthServer(t)
	store := NewMemoryStore()
	c := New(server.URL, store)

	account, err := c.Login(context.Background(), &LoginRequest{
		Email:    "user@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.Nil(t, account)

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)

	// A failed login never stores tokens.
	access, refresh := store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}
