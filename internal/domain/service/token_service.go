package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type discriminators carried inside the signed payload. A single
// verification routine serves both kinds; callers enforce the expected type
// after verification succeeds.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims carried by every token issued by this service.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Type   string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair bundles the access and refresh tokens that are always issued together.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService defines the interface for issuing and verifying signed tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// IssueAccessToken creates a short-lived access token for the subject.
	IssueAccessToken(userID uuid.UUID) (string, error)

	// IssueRefreshToken creates a long-lived refresh token for the subject.
	IssueRefreshToken(userID uuid.UUID) (string, error)

	// IssuePair creates a fresh access/refresh token pair for the subject.
	IssuePair(userID uuid.UUID) (*TokenPair, error)

	// VerifyToken validates signature and expiry of a token string.
	// It returns the uniform domain error for any failure; the cause
	// (malformed, bad signature, expired) is deliberately not exposed.
	VerifyToken(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
