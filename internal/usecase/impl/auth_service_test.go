package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	domainerrors "pfm/internal/domain/errors"
	"pfm/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service  usecase.AuthUsecase
	userRepo *fakeUserRepo
	hasher   *fakeHasher
	tokens   *fakeTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	userRepo := newFakeUserRepo()
	hasher := &fakeHasher{}
	tokens := newFakeTokenService()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAuthService(&fakeTxManager{repo: userRepo}, userRepo, hasher, tokens, logger)

	return authServiceFixtures{
		service:  service,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "new@example.com",
		Password: "StrongPass123!",
		Name:     "New User",
	})

	require.NoError(t, err)
	require.NotNil(t, output.User)
	assert.Equal(t, "new@example.com", output.User.Email)
	assert.Equal(t, "New User", output.User.Name)
	assert.NotEmpty(t, output.User.ID)
	require.NotNil(t, output.Tokens)
	assert.NotEmpty(t, output.Tokens.AccessToken)
	assert.NotEmpty(t, output.Tokens.RefreshToken)

	// The stored user carries the hash, the output never does.
	stored, err := fx.userRepo.FindByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:StrongPass123!", stored.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "taken@example.com",
		Password: "StrongPass123!",
	})
	require.NoError(t, err)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "taken@example.com",
		Password: "OtherPass456!",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyExists))
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	fx := createTestAuthService(t)
	fx.hasher.failHash = errors.New("bcrypt blew up")

	output, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "new@example.com",
		Password: "StrongPass123!",
	})

	require.Error(t, err)
	assert.Nil(t, output)

	// Nothing was persisted.
	_, findErr := fx.userRepo.FindByEmail(context.Background(), "new@example.com")
	assert.Error(t, findErr)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "user@example.com",
		Password: "StrongPass123!",
		Name:     "User",
	})
	require.NoError(t, err)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "user@example.com",
		Password: "StrongPass123!",
	})

	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, output.User.ID)
	assert.NotEmpty(t, output.Tokens.AccessToken)
	// Login mints a fresh pair, not a replay of registration's.
	assert.NotEqual(t, registered.Tokens.AccessToken, output.Tokens.AccessToken)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "StrongPass123!",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "user@example.com",
		Password: "StrongPass123!",
	})
	require.NoError(t, err)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "user@example.com",
		Password: "WrongPass123!",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	// Indistinguishable from the unknown-email failure.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_RefreshToken_RotatesPair(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "user@example.com",
		Password: "StrongPass123!",
	})
	require.NoError(t, err)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{
		RefreshToken: registered.Tokens.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.Tokens.AccessToken)
	assert.NotEmpty(t, output.Tokens.RefreshToken)
	assert.NotEqual(t, registered.Tokens.AccessToken, output.Tokens.AccessToken)
	assert.NotEqual(t, registered.Tokens.RefreshToken, output.Tokens.RefreshToken)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "user@example.com",
		Password: "StrongPass123!",
	})
	require.NoError(t, err)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{
		RefreshToken: registered.Tokens.AccessToken,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTokenType))
}

func TestAuthService_RefreshToken_InvalidToken(t *testing.T) {
	fx := createTestAuthService(t)

	output, err := fx.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: "garbage",
	})

	require.Error(t, err)
	assert.Nil(t, output)
}

func TestAuthService_RefreshToken_DeletedUser(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "user@example.com",
		Password: "StrongPass123!",
	})
	require.NoError(t, err)

	fx.userRepo.delete(registered.User.ID)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{
		RefreshToken: registered.Tokens.RefreshToken,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
