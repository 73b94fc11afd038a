package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "pfm/internal/delivery/context"
	"pfm/internal/delivery/http/response"
	"pfm/internal/domain/entity"
	domainerrors "pfm/internal/domain/errors"
	"pfm/internal/domain/repository"
	"pfm/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenService accepts only the tokens it was seeded with.
type fakeTokenService struct {
	valid map[string]*service.Claims
}

func (s *fakeTokenService) IssueAccessToken(uuid.UUID) (string, error)  { return "", nil }
func (s *fakeTokenService) IssueRefreshToken(uuid.UUID) (string, error) { return "", nil }
func (s *fakeTokenService) IssuePair(uuid.UUID) (*service.TokenPair, error) {
	return nil, nil
}

func (s *fakeTokenService) VerifyToken(tokenString string) (*service.Claims, error) {
	claims, ok := s.valid[tokenString]
	if !ok {
		return nil, domainerrors.ErrInvalidOrExpiredToken
	}

	return claims, nil
}

func (s *fakeTokenService) AccessTokenDuration() time.Duration  { return 15 * time.Minute }
func (s *fakeTokenService) RefreshTokenDuration() time.Duration { return 7 * 24 * time.Hour }

// fakeUserRepo serves a single user. A non-nil findErr simulates an
// infrastructure failure on every lookup.
type fakeUserRepo struct {
	user    *entity.User
	findErr error
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }

type guardFixtures struct {
	echo   *echo.Echo
	user   *entity.User
	users  *fakeUserRepo
	tokens *fakeTokenService
}

func createTestGuard(t *testing.T) guardFixtures {
	t.Helper()

	user := &entity.User{
		ID:    uuid.New(),
		Email: "user@example.com",
		Name:  "User",
	}
	tokens := &fakeTokenService{valid: map[string]*service.Claims{
		"good-access-token":  {UserID: user.ID, Type: service.TokenTypeAccess},
		"good-refresh-token": {UserID: user.ID, Type: service.TokenTypeRefresh},
		"orphan-token":       {UserID: uuid.New(), Type: service.TokenTypeAccess},
	}}

	users := &fakeUserRepo{user: user}
	guard := NewAuthMiddleware(tokens, users)

	e := echo.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError

	whoami := func(c echo.Context) error {
		identity, ok := deliverycontext.GetIdentity(c.Request().Context())
		if !ok {
			return response.Success(c, http.StatusOK, map[string]string{"who": "anonymous"}, "")
		}

		return response.Success(c, http.StatusOK, map[string]string{"who": identity.Email}, "")
	}

	e.GET("/guarded", whoami, guard.Authenticate)
	e.GET("/optional", whoami, guard.OptionalAuthenticate)

	return guardFixtures{echo: e, user: user, users: users, tokens: tokens}
}

func doRequest(t *testing.T, e *echo.Echo, path, authHeader string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestAuthenticate_ValidToken(t *testing.T) {
	fx := createTestGuard(t)

	rec, body := doRequest(t, fx.echo, "/guarded", "Bearer good-access-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	fx := createTestGuard(t)

	rec, body := doRequest(t, fx.echo, "/guarded", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", body.Error.Code)
	assert.Equal(t, "Authorization token required", body.Message)
}

func TestAuthenticate_BareToken(t *testing.T) {
	fx := createTestGuard(t)

	// Token without the "Bearer " prefix counts as missing.
	rec, body := doRequest(t, fx.echo, "/guarded", "good-access-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", body.Error.Code)
}

func TestAuthenticate_LowercasePrefix(t *testing.T) {
	fx := createTestGuard(t)

	rec, body := doRequest(t, fx.echo, "/guarded", "bearer good-access-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", body.Error.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	fx := createTestGuard(t)

	rec, body := doRequest(t, fx.echo, "/guarded", "Bearer forged-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", body.Error.Code)
	assert.Equal(t, "Invalid or expired token", body.Message)
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	fx := createTestGuard(t)

	// A refresh token never authorizes an API call.
	rec, body := doRequest(t, fx.echo, "/guarded", "Bearer good-refresh-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN_TYPE", body.Error.Code)
	assert.Equal(t, "Invalid token type", body.Message)
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	fx := createTestGuard(t)

	rec, body := doRequest(t, fx.echo, "/guarded", "Bearer orphan-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", body.Error.Code)
}

func TestAuthenticate_UserLookupFailure(t *testing.T) {
	fx := createTestGuard(t)
	fx.users.findErr = errors.New("connection reset by peer")

	// A database outage is a server fault, not a revoked account.
	rec, body := doRequest(t, fx.echo, "/guarded", "Bearer good-access-token")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}

func TestOptionalAuthenticate_AnonymousPasses(t *testing.T) {
	fx := createTestGuard(t)

	rec, body := doRequest(t, fx.echo, "/optional", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
}

func TestOptionalAuthenticate_BadTokenStillPasses(t *testing.T) {
	fx := createTestGuard(t)

	rec, body := doRequest(t, fx.echo, "/optional", "Bearer forged-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
}

func TestOptionalAuthenticate_ValidTokenAttachesIdentity(t *testing.T) {
	fx := createTestGuard(t)

	rec, body := doRequest(t, fx.echo, "/optional", "Bearer good-access-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, fx.user.Email, data["who"])
}
