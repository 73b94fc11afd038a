package middleware

import (
	"strings"

	deliverycontext "pfm/internal/delivery/context"
	domainerrors "pfm/internal/domain/errors"
	"pfm/internal/domain/repository"
	"pfm/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bearerPrefix is matched literally: capital B, single trailing space.
// Anything else in the Authorization header counts as a missing token.
const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for JWT authentication.
// Tokens are stateless, so the only per-request work is one signature check
// and one user lookup; nothing is cached across requests.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate is the required guard. It validates the bearer access token,
// loads the subject, and attaches the identity to the request context.
// Any failure short-circuits with 401 and never invokes the downstream handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := m.resolveIdentity(c)
		if err != nil {
			return err
		}

		attachIdentity(c, identity)

		return next(c)
	}
}

// OptionalAuthenticate runs the same checks as Authenticate but swallows every
// failure; the request proceeds anonymous instead of being blocked.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := m.resolveIdentity(c)
		if err == nil {
			attachIdentity(c, identity)
		}

		return next(c)
	}
}

// resolveIdentity performs the shared verification pipeline: exact-prefix
// header check, token verification, type check, then one fresh user lookup.
func (m *AuthMiddleware) resolveIdentity(c echo.Context) (*deliverycontext.Identity, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, domainerrors.ErrMissingToken
	}

	tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

	claims, err := m.tokenSvc.VerifyToken(tokenString)
	if err != nil {
		return nil, domainerrors.ErrInvalidOrExpiredToken
	}

	// A refresh token must never authorize an API call.
	if claims.Type != service.TokenTypeAccess {
		return nil, domainerrors.ErrInvalidTokenType
	}

	user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		// Only a genuinely missing user is an auth failure; an infra error
		// must surface as 500, not masquerade as a revoked account.
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load token subject")
	}

	return &deliverycontext.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}, nil
}

func attachIdentity(c echo.Context, identity *deliverycontext.Identity) {
	ctx := deliverycontext.WithIdentity(c.Request().Context(), identity)
	c.SetRequest(c.Request().WithContext(ctx))
}
